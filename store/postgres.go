package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinema-booking-cli/model"
)

const bookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id            BIGSERIAL PRIMARY KEY,
	booked_at     TEXT   NOT NULL,
	customer_name TEXT   NOT NULL,
	contact       TEXT   NOT NULL,
	movie_title   TEXT   NOT NULL,
	showtime      TEXT   NOT NULL,
	seats         TEXT[] NOT NULL,
	total_cents   BIGINT NOT NULL CHECK (total_cents >= 0)
)`

// PostgresStore keeps bookings in a bookings table, ordered by insertion.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

// OpenPostgresStore connects to databaseURL and makes sure the schema exists.
func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	s := NewPostgresStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, bookingsSchema); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() {
	p.Pool.Close()
}

func (p *PostgresStore) Load(ctx context.Context) ([]model.Booking, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT booked_at, customer_name, contact, movie_title, showtime, seats, total_cents
		FROM bookings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var (
			b     model.Booking
			total int64
		)
		if err := rows.Scan(&b.Timestamp, &b.Name, &b.Contact, &b.Movie, &b.Showtime, &b.Seats, &total); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Total = model.Cents(total)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	return bookings, nil
}

func (p *PostgresStore) Append(ctx context.Context, b model.Booking) error {
	return insertBooking(ctx, p.Pool, b)
}

// SaveAll replaces the table content in a single transaction.
func (p *PostgresStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	return pgx.BeginFunc(ctx, p.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
			return fmt.Errorf("clear bookings: %w", err)
		}
		for _, b := range bookings {
			if err := insertBooking(ctx, tx, b); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertBooking(ctx context.Context, db execer, b model.Booking) error {
	seatList := b.Seats
	if seatList == nil {
		seatList = []string{}
	}
	_, err := db.Exec(ctx, `
		INSERT INTO bookings (booked_at, customer_name, contact, movie_title, showtime, seats, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		b.Timestamp,
		b.Name,
		b.Contact,
		b.Movie,
		b.Showtime,
		seatList,
		int64(b.Total),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
