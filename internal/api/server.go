package api

import (
	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/services"
	"github.com/TobiAkinkuotu/flashcard-server/internal/worker"
)

type Server struct {
	DB              *db.DB
	UserService     services.UserService
	DeckService     services.DeckService
	QuizService     services.QuizService
	ProgressService services.ProgressService
	ImportPool      *worker.Pool
}
