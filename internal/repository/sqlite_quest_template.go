package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/jmoiron/sqlx"
)

// SQLiteQuestTemplateRepo reads the quest catalog with struct scanning.
// It is not transaction-scoped: the catalog is only written by migrations.
type SQLiteQuestTemplateRepo struct {
	db sqlx.QueryerContext
}

// NewSQLiteQuestTemplateRepo creates a new SQLiteQuestTemplateRepo.
func NewSQLiteQuestTemplateRepo(q sqlx.QueryerContext) *SQLiteQuestTemplateRepo {
	return &SQLiteQuestTemplateRepo{db: q}
}

// NewSQLiteQuestTemplateRepoFromDB wraps a plain *sql.DB for sqlx.
func NewSQLiteQuestTemplateRepoFromDB(conn *sql.DB) *SQLiteQuestTemplateRepo {
	return NewSQLiteQuestTemplateRepo(sqlx.NewDb(conn, "sqlite"))
}

type questTemplateRow struct {
	ID               string `db:"id"`
	Name             string `db:"name"`
	Reward           int    `db:"reward"`
	Target           int    `db:"target"`
	RelatedHabitType string `db:"related_habit_type"`
	Active           bool   `db:"active"`
}

func (row questTemplateRow) toDomain() domain.QuestTemplate {
	return domain.QuestTemplate{
		ID:               row.ID,
		Name:             row.Name,
		Reward:           row.Reward,
		Target:           row.Target,
		RelatedHabitType: domain.RelatedHabitType(row.RelatedHabitType),
		Active:           row.Active,
	}
}

const questTemplateSelect = `SELECT id, name, reward, target, related_habit_type, active FROM quest_templates`

func (r *SQLiteQuestTemplateRepo) List(ctx context.Context) ([]domain.QuestTemplate, error) {
	return r.selectTemplates(ctx, questTemplateSelect+` ORDER BY id`)
}

func (r *SQLiteQuestTemplateRepo) ListActive(ctx context.Context) ([]domain.QuestTemplate, error) {
	return r.selectTemplates(ctx, questTemplateSelect+` WHERE active = 1 ORDER BY id`)
}

func (r *SQLiteQuestTemplateRepo) GetByID(ctx context.Context, id string) (*domain.QuestTemplate, error) {
	var row questTemplateRow
	if err := sqlx.GetContext(ctx, r.db, &row, questTemplateSelect+` WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quest template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading quest template: %w", err)
	}
	tpl := row.toDomain()
	return &tpl, nil
}

func (r *SQLiteQuestTemplateRepo) selectTemplates(ctx context.Context, query string) ([]domain.QuestTemplate, error) {
	var rows []questTemplateRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("listing quest templates: %w", err)
	}
	out := make([]domain.QuestTemplate, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}
