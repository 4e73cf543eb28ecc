package packet

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const historyTable = "diamond_packet_processes"

var listSchema = query.NewSchema("diamondPacket",
	[]query.Sort{query.Desc("updatedAt")},
	query.Text("diamondPacketId", "diamond_packet_code", 50),
	query.Text("batchNo", "batch_no", 50),
	query.Text("evNo", "ev_no", 50),
	query.Text("packetNo", "packet_no", 50),
	query.Int("lot", "lot").Positive(),
	query.Int("piece", "piece").Positive(),
	query.Decimal("makeableWeight", "makeable_weight").Step("0.0001"),
	query.Decimal("expectedWeight", "expected_weight").Step("0.0001"),
	query.Decimal("booterWeight", "booter_weight").Step("0.0001"),
	query.OneOf("diamondShape", "diamond_shape", domain.DiamondShapes...),
	query.OneOf("diamondColor", "diamond_color", domain.DiamondColors...),
	query.OneOf("diamondPurity", "diamond_purity", domain.DiamondPurities...),
	query.Decimal("size", "size"),
	query.Decimal("expectedPercentage", "expected_percentage"),
	query.Timestamp("receiveDateTime", "receive_date_time"),
	query.Timestamp("deliveryDateTime", "delivery_date_time"),
	query.ID("clientId", "client_id"),
)

//go:generate mockgen -source=packet_repo.go -destination=mock/packet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *DiamondPacket) error
	FindByID(ctx context.Context, userID, id string) (*DiamondPacket, error)
	FindByIDs(ctx context.Context, userID string, ids []string) ([]DiamondPacket, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[DiamondPacket], error)
	FindOptions(ctx context.Context, userID string) ([]DiamondPacket, error)
	PacketIDTaken(ctx context.Context, userID, packetID, excludeID string) (bool, error)
	CompletedHistory(ctx context.Context, packetIDs []string) (map[string][]HistoryEntry, error)
	Update(ctx context.Context, p *DiamondPacket) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, p *DiamondPacket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, userID, id string) (*DiamondPacket, error) {
	var p DiamondPacket
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Client").
		First(&p, "id = ?", id).Error
	return &p, err
}

// FindByIDs returns the subset of ids owned by userID. Callers compare lengths
// to detect missing packets.
func (r *repository) FindByIDs(ctx context.Context, userID string, ids []string) ([]DiamondPacket, error) {
	var packets []DiamondPacket
	if len(ids) == 0 {
		return packets, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Where("id IN ?", ids).
		Find(&packets).Error
	return packets, err
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[DiamondPacket], error) {
	return query.List[DiamondPacket](ctx, r.db, listSchema, userID, req, query.Preload("Client"))
}

func (r *repository) FindOptions(ctx context.Context, userID string) ([]DiamondPacket, error) {
	var packets []DiamondPacket
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Select("id", "diamond_packet_code", "client_id").
		Order("diamond_packet_code ASC").
		Find(&packets).Error
	return packets, err
}

func (r *repository) PacketIDTaken(ctx context.Context, userID, packetID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&DiamondPacket{}).
		Scopes(tenant.Scope(userID)).
		Where("diamond_packet_code = ?", packetID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// CompletedHistory loads COMPLETED assignments grouped by packet id. Packets
// are expected to be already scoped by the caller.
func (r *repository) CompletedHistory(ctx context.Context, packetIDs []string) (map[string][]HistoryEntry, error) {
	out := make(map[string][]HistoryEntry, len(packetIDs))
	if len(packetIDs) == 0 {
		return out, nil
	}

	var rows []HistoryEntry
	err := r.db.WithContext(ctx).
		Table(historyTable).
		Select("id", "diamond_packet_id", "status", "after_weight", "start_date_time", "created_at").
		Where("diamond_packet_id IN ? AND status = ?", packetIDs, domain.StatusCompleted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, h := range rows {
		key := h.DiamondPacketID.String()
		out[key] = append(out[key], h)
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, p *DiamondPacket) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Scopes(tenant.Scope(p.UserID.String())).
		Select(
			"diamond_packet_code", "batch_no", "ev_no", "packet_no", "lot", "piece",
			"makeable_weight", "expected_weight", "booter_weight",
			"diamond_shape", "diamond_color", "diamond_purity",
			"size", "expected_percentage",
			"receive_date_time", "delivery_date_time", "client_id", "updated_at",
		).
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&DiamondPacket{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
