package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWash/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CarWash/pkg/txmanager"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"user_id",
	"shop_id",
	"booking_date",
	"start_time",
	"service_id",
	"service_name",
	"service_duration_minutes",
	"service_price",
	"add_ons",
	"vehicle_plate",
	"vehicle_type",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_color",
	"total_price",
	"notes",
	"status",
	"auto_accepted",
	"immediate_payment",
	"is_paid",
	"payment_method",
	"paid_at",
	"feedback_rating",
	"feedback_comment",
	"feedback_submitted_at",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"auto_confirmed_at",
	"created_at",
	"updated_at",
	"updated_by",
}

// Repository репозиторий бронирований в Postgres
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// В транзакции создания вызывается после LockShopDay и проверки пересечений.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	addOns, err := marshalAddOns(booking.AddOns)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal add-ons: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"id",
			"user_id",
			"shop_id",
			"booking_date",
			"start_time",
			"service_id",
			"service_name",
			"service_duration_minutes",
			"service_price",
			"add_ons",
			"vehicle_plate",
			"vehicle_type",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_color",
			"total_price",
			"notes",
			"status",
			"auto_accepted",
			"immediate_payment",
			"is_paid",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.ShopID,
			booking.Date.Format(domain.DateFormat),
			booking.Time,
			booking.Service.ID,
			booking.Service.Name,
			booking.Service.DurationMinutes,
			booking.Service.Price,
			string(addOns),
			booking.Vehicle.PlateNumber,
			booking.Vehicle.Type,
			booking.Vehicle.Brand,
			booking.Vehicle.Model,
			booking.Vehicle.Color,
			booking.TotalPrice,
			booking.Notes,
			booking.Status,
			booking.AutoAccepted,
			booking.ImmediatePayment,
			booking.IsPaid,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, execError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id string, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row bookingRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.dest()...)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return row.toDomain()
}

// GetByUserID получает бронирования пользователя, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByUserID - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByShopWithFilter получает бронирования мойки с фильтрацией по периоду и статусу.
//
// Примеры:
//
//	// Занятость на дату (для проверки пересечений)
//	domain.ShopBookingsFilter{ShopID: "shop-1", From: &day, To: &day}
//
//	// Все ожидающие подтверждения
//	status := domain.StatusPending
//	domain.ShopBookingsFilter{ShopID: "shop-1", Status: &status}
//
// Внутри транзакции запрос на одну дату блокирует найденные строки (FOR UPDATE).
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.To.Format(domain.DateFormat)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.BlockingStatuses)})
	}

	if filter.SingleDay() {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.SingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByShopWithFilter - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetPendingByDate возвращает ожидающие подтверждения бронирования всех моек на дату
func (r *Repository) GetPendingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{
			"booking_date": date.Format(domain.DateFormat),
			"status":       domain.StatusPending,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetPendingByDate - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования (статус, оплата, отзыв, отмена)
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var rating sql.NullInt64
	var comment sql.NullString
	var submittedAt sql.NullTime
	if booking.Feedback != nil {
		rating = sql.NullInt64{Int64: int64(booking.Feedback.Rating), Valid: true}
		comment = sql.NullString{String: booking.Feedback.Comment, Valid: true}
		submittedAt = sql.NullTime{Time: booking.Feedback.SubmittedAt, Valid: true}
	}

	updatedAt := sql.NullTime{Time: booking.UpdatedAt, Valid: !booking.UpdatedAt.IsZero()}

	var cancelledBy *string
	if booking.CancelledBy != nil {
		v := string(*booking.CancelledBy)
		cancelledBy = &v
	}

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", booking.Status).
		Set("is_paid", booking.IsPaid).
		Set("payment_method", booking.PaymentMethod).
		Set("paid_at", booking.PaidAt).
		Set("feedback_rating", rating).
		Set("feedback_comment", comment).
		Set("feedback_submitted_at", submittedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", booking.CancellationReason).
		Set("auto_confirmed_at", booking.AutoConfirmedAt).
		Set("updated_by", booking.UpdatedBy).
		Set("updated_at", squirrel.Expr("COALESCE(?, NOW())", updatedAt)).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("Update - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// LockShopDay берёт advisory-блокировку на пару (мойка, дата) до конца текущей транзакции.
// В SERIALIZABLE снимок фиксируется этим же запросом, до ожидания блокировки,
// поэтому ждавшая транзакция не видит запись победителя: её отсекает
// конфликт сериализации (40001) на проверке пересечений или при коммите.
func (r *Repository) LockShopDay(ctx context.Context, shopID string, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockShopDay requires a transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := shopID + "|" + date.Format(domain.DateFormat)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return execError("LockShopDay - acquire lock", err)
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var row bookingRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// execError различает конфликт сериализации и прочие ошибки выполнения
func execError(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type addOnRecord struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func marshalAddOns(addOns []domain.AddOn) ([]byte, error) {
	records := make([]addOnRecord, len(addOns))
	for i, a := range addOns {
		records[i] = addOnRecord{Name: a.Name, Price: a.Price}
	}
	return json.Marshal(records)
}

func unmarshalAddOns(data []byte) ([]domain.AddOn, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []addOnRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	addOns := make([]domain.AddOn, len(records))
	for i, rec := range records {
		addOns[i] = domain.AddOn{Name: rec.Name, Price: rec.Price}
	}
	return addOns, nil
}

// bookingRow строка таблицы bookings в порядке bookingColumns
type bookingRow struct {
	ID                  string
	UserID              int64
	ShopID              string
	Date                time.Time
	StartTime           types.TimeString
	ServiceID           string
	ServiceName         string
	ServiceDuration     int
	ServicePrice        float64
	AddOns              []byte
	VehiclePlate        string
	VehicleType         string
	VehicleBrand        string
	VehicleModel        string
	VehicleColor        string
	TotalPrice          float64
	Notes               sql.NullString
	Status              string
	AutoAccepted        bool
	ImmediatePayment    bool
	IsPaid              bool
	PaymentMethod       sql.NullString
	PaidAt              sql.NullTime
	FeedbackRating      sql.NullInt64
	FeedbackComment     sql.NullString
	FeedbackSubmittedAt sql.NullTime
	CancelledAt         sql.NullTime
	CancelledBy         sql.NullString
	CancellationReason  sql.NullString
	AutoConfirmedAt     sql.NullTime
	CreatedAt           sql.NullTime
	UpdatedAt           sql.NullTime
	UpdatedBy           sql.NullInt64
}

func (r *bookingRow) dest() []interface{} {
	return []interface{}{
		&r.ID,
		&r.UserID,
		&r.ShopID,
		&r.Date,
		&r.StartTime,
		&r.ServiceID,
		&r.ServiceName,
		&r.ServiceDuration,
		&r.ServicePrice,
		&r.AddOns,
		&r.VehiclePlate,
		&r.VehicleType,
		&r.VehicleBrand,
		&r.VehicleModel,
		&r.VehicleColor,
		&r.TotalPrice,
		&r.Notes,
		&r.Status,
		&r.AutoAccepted,
		&r.ImmediatePayment,
		&r.IsPaid,
		&r.PaymentMethod,
		&r.PaidAt,
		&r.FeedbackRating,
		&r.FeedbackComment,
		&r.FeedbackSubmittedAt,
		&r.CancelledAt,
		&r.CancelledBy,
		&r.CancellationReason,
		&r.AutoConfirmedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.UpdatedBy,
	}
}

func (r *bookingRow) toDomain() (*domain.Booking, error) {
	addOns, err := unmarshalAddOns(r.AddOns)
	if err != nil {
		return nil, fmt.Errorf("%w: decode add_ons of booking %s: %v", ErrScanRow, r.ID, err)
	}

	b := &domain.Booking{
		ID:     r.ID,
		UserID: r.UserID,
		ShopID: r.ShopID,
		Date:   domain.CalendarDay(r.Date),
		Time:   r.StartTime,
		Service: domain.ServiceSnapshot{
			ID:              r.ServiceID,
			Name:            r.ServiceName,
			DurationMinutes: r.ServiceDuration,
			Price:           r.ServicePrice,
		},
		AddOns: addOns,
		Vehicle: domain.VehicleSnapshot{
			PlateNumber: r.VehiclePlate,
			Type:        r.VehicleType,
			Brand:       r.VehicleBrand,
			Model:       r.VehicleModel,
			Color:       r.VehicleColor,
		},
		TotalPrice:         r.TotalPrice,
		Notes:              nullString(r.Notes),
		Status:             domain.BookingStatus(r.Status),
		AutoAccepted:       r.AutoAccepted,
		ImmediatePayment:   r.ImmediatePayment,
		IsPaid:             r.IsPaid,
		PaymentMethod:      nullString(r.PaymentMethod),
		PaidAt:             nullTime(r.PaidAt),
		CancelledAt:        nullTime(r.CancelledAt),
		CancellationReason: nullString(r.CancellationReason),
		AutoConfirmedAt:    nullTime(r.AutoConfirmedAt),
		CreatedAt:          r.CreatedAt.Time,
		UpdatedAt:          r.UpdatedAt.Time,
	}

	if r.FeedbackRating.Valid {
		b.Feedback = &domain.Feedback{
			Rating:      int(r.FeedbackRating.Int64),
			Comment:     r.FeedbackComment.String,
			SubmittedAt: r.FeedbackSubmittedAt.Time,
		}
	}
	if r.CancelledBy.Valid {
		who := domain.CancelledBy(r.CancelledBy.String)
		b.CancelledBy = &who
	}
	if r.UpdatedBy.Valid {
		by := r.UpdatedBy.Int64
		b.UpdatedBy = &by
	}

	return b, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
