package model

import "time"

// Task 任务清单中的一项
type Task struct {
	ID        int64     `json:"id,string"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskProgress 任务完成进度
type TaskProgress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type Note struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// TaskBoard 任务列表及其进度
type TaskBoard struct {
	Tasks    []Task       `json:"tasks"`
	Progress TaskProgress `json:"progress"`
}
