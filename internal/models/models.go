package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	PublicID     string    `json:"publicId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate carries a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	Name      *string
	AvatarURL *string
}

type Deck struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	CardCount int       `json:"cardCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type DeckFilter struct {
	UserID   int64
	Title    string
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}

type Card struct {
	ID        int64     `json:"id"`
	DeckID    int64     `json:"deckId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

type QuizSession struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	DeckID        int64      `json:"deckId"`
	TotalCards    int        `json:"totalCards"`
	CorrectCount  int        `json:"correctCount"`
	AnsweredCount int        `json:"answeredCount"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type QuizAnswer struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"sessionId"`
	CardID     int64     `json:"cardId"`
	Answer     string    `json:"answer"`
	WasCorrect bool      `json:"wasCorrect"`
	CreatedAt  time.Time `json:"createdAt"`
}
