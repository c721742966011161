package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionType struct {
	ID          string
	CampaignID  string
	Name        string
	Description *string
	CreatedAt   time.Time
}

type MissionTypeRepository interface {
	Create(ctx context.Context, mt *MissionType) error
	FindByID(ctx context.Context, campaignID, id string) (*MissionType, error)
	FindByCampaign(ctx context.Context, campaignID string) ([]*MissionType, error)
	Delete(ctx context.Context, id string) error
}

type pgMissionTypeRepository struct {
	pool *pgxpool.Pool
}

func NewMissionTypeRepository(pool *pgxpool.Pool) MissionTypeRepository {
	return &pgMissionTypeRepository{pool: pool}
}

func (r *pgMissionTypeRepository) Create(ctx context.Context, mt *MissionType) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO mission_types (campaign_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, mt.CampaignID, mt.Name, mt.Description).
		Scan(&mt.ID, &mt.CreatedAt)
}

func (r *pgMissionTypeRepository) FindByID(ctx context.Context, campaignID, id string) (*MissionType, error) {
	mt := &MissionType{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, name, description, created_at
		FROM mission_types
		WHERE id = $1 AND campaign_id = $2
	`, id, campaignID).
		Scan(&mt.ID, &mt.CampaignID, &mt.Name, &mt.Description, &mt.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mt, nil
}

func (r *pgMissionTypeRepository) FindByCampaign(ctx context.Context, campaignID string) ([]*MissionType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, name, description, created_at
		FROM mission_types
		WHERE campaign_id = $1
		ORDER BY name
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missionTypes []*MissionType
	for rows.Next() {
		mt := &MissionType{}
		if err := rows.Scan(&mt.ID, &mt.CampaignID, &mt.Name, &mt.Description, &mt.CreatedAt); err != nil {
			return nil, err
		}
		missionTypes = append(missionTypes, mt)
	}
	return missionTypes, rows.Err()
}

func (r *pgMissionTypeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mission_types WHERE id = $1`, id)
	return err
}
