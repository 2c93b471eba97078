package dto

// MarkChapterReadDTO records that the current user finished a chapter
type MarkChapterReadDTO struct {
	ManhwaID  int64 `json:"manhwa_id" binding:"required"`
	ChapterID int64 `json:"chapter_id" binding:"required"`
}

// ReadingTimeDTO adds reading minutes to the current user's total
type ReadingTimeDTO struct {
	Minutes int64 `json:"minutes" binding:"required,min=1,max=1440"`
}
