package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
)

type ParticipationRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewParticipationRepository(sqlDB *sql.DB, logger zerolog.Logger) *ParticipationRepository {
	return &ParticipationRepository{
		db:     sqlDB,
		logger: logger,
	}
}

var participationColumns = query.Columns{
	domain.FieldID:          "mp.id",
	domain.FieldMatchID:     "mp.match_id",
	domain.FieldSuperstarID: "mp.superstar_id",
	domain.FieldTeamNumber:  "mp.team_number",
	domain.FieldIsWinner:    "mp.is_winner",
}

func (r *ParticipationRepository) ListParticipations(ctx context.Context, spec query.Spec) ([]domain.Participation, error) {
	compiled, err := query.Compile(spec, participationColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT mp.id, mp.match_id, mp.superstar_id, mp.team_number, mp.is_winner FROM match_participants mp"+compiled.Clause(),
		compiled.Args...)
	if err != nil {
		return nil, fmt.Errorf("query participations: %w", err)
	}
	defer rows.Close()

	var result []domain.Participation
	for rows.Next() {
		var p domain.Participation
		if err := rows.Scan(&p.ID, &p.MatchID, &p.PerformerID, &p.TeamNumber, &p.IsWinner); err != nil {
			return nil, fmt.Errorf("scan participation: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("predicates", len(spec.Predicates)).
		Int("rows", len(result)).
		Msg("participations listed")

	return result, nil
}

func (r *ParticipationRepository) ListParticipants(ctx context.Context, matchIDs []int64) ([]domain.Participant, error) {
	if len(matchIDs) == 0 {
		return []domain.Participant{}, nil
	}

	spec := query.New().
		In(domain.FieldMatchID, query.List(matchIDs...)).
		OrderBy(domain.FieldMatchID, false).
		OrderBy(domain.FieldTeamNumber, false).
		OrderBy(domain.FieldID, false)
	compiled, err := query.Compile(spec, participationColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT mp.id, mp.match_id, mp.superstar_id, mp.team_number, mp.is_winner, sp.name, sp.slug, sp.photo_url
FROM match_participants mp
JOIN superstars sp ON sp.id = mp.superstar_id`+compiled.Clause(), compiled.Args...)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var result []domain.Participant
	for rows.Next() {
		var (
			p     domain.Participant
			photo sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.MatchID, &p.PerformerID, &p.TeamNumber, &p.IsWinner,
			&p.Performer.Name, &p.Performer.Slug, &photo); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.Performer.ID = p.PerformerID
		p.Performer.PhotoURL = photo.String
		result = append(result, p)
	}
	return result, rows.Err()
}

var managerColumns = query.Columns{
	domain.FieldID:      "mm.id",
	domain.FieldMatchID: "mm.match_id",
}

func (r *ParticipationRepository) ListManagers(ctx context.Context, matchIDs []int64) ([]domain.ManagerLink, error) {
	if len(matchIDs) == 0 {
		return []domain.ManagerLink{}, nil
	}

	spec := query.New().
		In(domain.FieldMatchID, query.List(matchIDs...)).
		OrderBy(domain.FieldMatchID, false).
		OrderBy(domain.FieldID, false)
	compiled, err := query.Compile(spec, managerColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT mm.id, mm.match_id, mm.manager_id, mm.team_number, mm.managed_superstar_id, sp.name, sp.slug, sp.photo_url
FROM match_managers mm
JOIN superstars sp ON sp.id = mm.manager_id`+compiled.Clause(), compiled.Args...)
	if err != nil {
		return nil, fmt.Errorf("query managers: %w", err)
	}
	defer rows.Close()

	var result []domain.ManagerLink
	for rows.Next() {
		var (
			m       domain.ManagerLink
			managed sql.NullInt64
			photo   sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.MatchID, &m.ManagerID, &m.TeamNumber, &managed,
			&m.Manager.Name, &m.Manager.Slug, &photo); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		if managed.Valid {
			m.ManagedID = &managed.Int64
		}
		m.Manager.ID = m.ManagerID
		m.Manager.PhotoURL = photo.String
		result = append(result, m)
	}
	return result, rows.Err()
}
