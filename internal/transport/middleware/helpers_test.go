package middleware

import (
	"log/slog"

	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
)

func testResponder() *respond.Responder {
	return respond.New(i18n.NewTranslator(i18n.English), slog.Default())
}
