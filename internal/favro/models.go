// Package favro implements a typed client for the Favro REST API.
package favro

import "time"

// Widget types as reported by the API.
const (
	WidgetTypeBoard   = "board"
	WidgetTypeBacklog = "backlog"
)

// Organization is a Favro organization the account has access to.
type Organization struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
}

// Widget is a board or backlog. Boards are identified by their
// widgetCommonId, which is shared across the collections a board appears in.
type Widget struct {
	WidgetCommonID string `json:"widgetCommonId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Color          string `json:"color,omitempty"`
	Archived       bool   `json:"archived,omitempty"`
}

// Column is a single column (status lane) on a board.
type Column struct {
	ColumnID       string `json:"columnId"`
	WidgetCommonID string `json:"widgetCommonId,omitempty"`
	Name           string `json:"name"`
	Position       int    `json:"position"`
	CardCount      int    `json:"cardCount"`
}

// Assignment links a user to a card.
type Assignment struct {
	UserID    string `json:"userId"`
	Completed bool   `json:"completed,omitempty"`
}

// Card is a single card. CardID identifies this placement of the card on a
// board; CardCommonID is shared when the same card appears on several boards.
// SequentialID is the small human-facing number, unique only per board.
type Card struct {
	CardID              string       `json:"cardId"`
	CardCommonID        string       `json:"cardCommonId"`
	WidgetCommonID      string       `json:"widgetCommonId,omitempty"`
	ColumnID            string       `json:"columnId,omitempty"`
	Name                string       `json:"name"`
	SequentialID        int          `json:"sequentialId"`
	DetailedDescription string       `json:"detailedDescription,omitempty"`
	Tags                []string     `json:"tags,omitempty"`
	Assignments         []Assignment `json:"assignments,omitempty"`
	TasksTotal          int          `json:"tasksTotal,omitempty"`
	TasksDone           int          `json:"tasksDone,omitempty"`
	NumComments         int          `json:"numComments,omitempty"`
	StartDate           *time.Time   `json:"startDate,omitempty"`
	DueDate             *time.Time   `json:"dueDate,omitempty"`
	ListPosition        float64      `json:"listPosition,omitempty"`
}

// Tag is an organization-wide label that can be attached to cards.
type Tag struct {
	TagID string `json:"tagId"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User is a member of the organization.
type User struct {
	UserID           string `json:"userId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	OrganizationRole string `json:"organizationRole,omitempty"`
}
