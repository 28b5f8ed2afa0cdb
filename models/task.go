package models

// Task is assigned to an employee by login. The reference is by value only;
// deleting or renaming a user does not cascade here.
type Task struct {
	Base
	Title      string `gorm:"size:255;not null" json:"title"`
	Desc       string `gorm:"size:1024" json:"desc"`
	Due        string `gorm:"size:64" json:"due"`
	AssignedTo string `gorm:"size:255;index" json:"assignedTo"`
	Done       bool   `json:"done"`
}
