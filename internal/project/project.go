// Package project persists the planning documents edited by the UI: tasks,
// assets, milestones, story elements, classes and notes, one JSON document per
// project under the user data directory.
package project

import "time"

// Task is a unit of work on the board.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`   // todo, doing, done
	Priority    string     `json:"priority"` // low, medium, high
	MilestoneID string     `json:"milestone_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Asset tracks a game asset to produce or acquire.
type Asset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"` // sprite, model, sound, music, shader, other
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Milestone groups tasks toward a dated goal.
type Milestone struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Done    bool       `json:"done"`
}

// StoryElement is a narrative building block.
type StoryElement struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // character, location, event, item, faction
	Name string `json:"name"`
	Body string `json:"body,omitempty"`
}

// ClassField is one field of a planned game class.
type ClassField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ClassSpec sketches a class for the game's code design.
type ClassSpec struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Extends string       `json:"extends,omitempty"`
	Fields  []ClassField `json:"fields,omitempty"`
	Methods []string     `json:"methods,omitempty"`
}

// Note is free-form text attached to the project.
type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Project is one planning document.
type Project struct {
	Name          string         `json:"name"`
	Tasks         []Task         `json:"tasks,omitempty"`
	Assets        []Asset        `json:"assets,omitempty"`
	Milestones    []Milestone    `json:"milestones,omitempty"`
	StoryElements []StoryElement `json:"story_elements,omitempty"`
	Classes       []ClassSpec    `json:"classes,omitempty"`
	Notes         []Note         `json:"notes,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
