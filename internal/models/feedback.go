package models

import "time"

type FeedbackItem struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type FeedbackPatch struct {
	Author  *string `json:"author" validate:"omitempty,min=1,max=100"`
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Message *string `json:"message" validate:"omitempty,min=10,max=2000"`
}

func (p FeedbackPatch) Apply(f *FeedbackItem) {
	if p.Author != nil {
		f.Author = *p.Author
	}
	if p.Rating != nil {
		f.Rating = *p.Rating
	}
	if p.Message != nil {
		f.Message = *p.Message
	}
}
