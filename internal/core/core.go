package core

import (
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/quillside/weblog/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sqlx.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sqlx.DB, log *slog.Logger) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: databaseutils.NewSQLTemplate(dbConn, 3*time.Second),
		session:     databaseutils.NewSession(dbConn),
	}
}
