package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/knxxxn/UpMe/store"
)

func (d *DB) CreateMessage(ctx context.Context, create *store.Message) (*store.Message, error) {
	fields := []string{"uid", "conversation_id", "role", "content", "feedback", "created_ts"}
	args := []any{create.UID, create.ConversationID, string(create.Role), create.Content, create.Feedback, create.CreatedTs}

	stmt := `INSERT INTO message (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return create, nil
}

func (d *DB) ListMessages(ctx context.Context, find *store.FindMessage) ([]*store.Message, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = ?"), append(args, *find.UID)
	}
	if find.ConversationID != nil {
		where, args = append(where, "conversation_id = ?"), append(args, *find.ConversationID)
	}

	query := `SELECT id, uid, conversation_id, role, content, feedback, created_ts FROM message WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Message, 0)
	for rows.Next() {
		m := &store.Message{}
		var role string
		if err := rows.Scan(&m.ID, &m.UID, &m.ConversationID, &role, &m.Content, &m.Feedback, &m.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = store.MessageRole(role)
		list = append(list, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return list, nil
}

// CreateTurn inserts the user and ai messages of one turn and touches the
// conversation timestamp in a single transaction.
func (d *DB) CreateTurn(ctx context.Context, appendTurn *store.AppendTurn) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO message (uid, conversation_id, role, content, feedback, created_ts)
		VALUES (` + placeholders(6) + `)
		RETURNING id`

	userMsg := appendTurn.UserMessage
	if err := tx.QueryRowContext(ctx, insert,
		userMsg.UID, appendTurn.ConversationID, string(userMsg.Role), userMsg.Content, userMsg.Feedback, userMsg.CreatedTs,
	).Scan(&userMsg.ID); err != nil {
		return fmt.Errorf("failed to create user message: %w", err)
	}

	aiMsg := appendTurn.AIMessage
	if err := tx.QueryRowContext(ctx, insert,
		aiMsg.UID, appendTurn.ConversationID, string(aiMsg.Role), aiMsg.Content, aiMsg.Feedback, aiMsg.CreatedTs,
	).Scan(&aiMsg.ID); err != nil {
		return fmt.Errorf("failed to create ai message: %w", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE conversation SET updated_ts = ? WHERE id = ?`, appendTurn.UpdatedTs, appendTurn.ConversationID)
	if err != nil {
		return fmt.Errorf("failed to update conversation timestamp: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return store.ErrConversationNotFound
	}

	return tx.Commit()
}
