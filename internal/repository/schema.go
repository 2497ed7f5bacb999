package repository

import (
	"errors"

	"gorm.io/gorm"

	"genai-chat/internal/model"
)

// ErrSchemaNotReady is returned by session-aware operations when the database
// still runs the legacy layout (no chat_sessions table, no session columns on
// chats). Callers in the request path absorb it and fall back to legacy
// inserts rather than failing the turn.
var ErrSchemaNotReady = errors.New("session schema not migrated")

// SchemaVersion records which schema generation the database runs. It is
// probed once at startup and handed to the repositories; a migration
// therefore requires a restart to be picked up.
type SchemaVersion struct {
	SessionsTable  bool
	SessionColumns bool
}

// ProbeSchema inspects the live database for the session-aware layout.
func ProbeSchema(db *gorm.DB) SchemaVersion {
	migrator := db.Migrator()
	return SchemaVersion{
		SessionsTable: migrator.HasTable(&model.ChatSession{}),
		SessionColumns: migrator.HasColumn(&model.Chat{}, "session_id") &&
			migrator.HasColumn(&model.Chat{}, "file_name"),
	}
}

// SupportsSessions reports whether chats can be linked to sessions at all.
func (v SchemaVersion) SupportsSessions() bool {
	return v.SessionsTable && v.SessionColumns
}
