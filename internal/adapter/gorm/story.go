package gorm

import (
	"time"

	"github.com/InterNutter/instants/internal/core/model"
)

type Story struct {
	Number int64 `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Year    int    `gorm:"not null"`
	Day     int    `gorm:"not null;check:story_day_range,day BETWEEN 1 AND 366"`
	Title   string `gorm:"not null"`
	Prompt  string `gorm:"not null"`
	Content string `gorm:"not null"`
}

type Tag struct {
	Number int64  `gorm:"primaryKey;autoIncrement:false"`
	Tag    string `gorm:"primaryKey;check:tag_not_empty,tag <> ''"`

	CreatedAt time.Time
}

type Favourite struct {
	Email  string `gorm:"primaryKey"`
	Number int64  `gorm:"primaryKey;autoIncrement:false;index"`

	CreatedAt time.Time
}

func fromStory(s model.Story) *Story {
	return &Story{
		Number:  int64(s.Number),
		Year:    s.Year,
		Day:     s.Day,
		Title:   s.Title,
		Prompt:  s.Prompt,
		Content: s.Content,
	}
}

func toStory(s *Story) *model.Story {
	return &model.Story{
		Number:  model.StoryNumber(s.Number),
		Year:    s.Year,
		Day:     s.Day,
		Title:   s.Title,
		Prompt:  s.Prompt,
		Content: s.Content,
	}
}
