package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/infras/kafka"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	guestModel "hotel/internal/domains/guest/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// memoryStore backs every repository the engine needs. Transactions are
// serialised and rolled back by restoring a snapshot.
type memoryStore struct {
	mu       sync.Mutex
	bookings map[string]model.Booking
	rooms    map[string]roomModel.Room
	guests   map[string]guestModel.Guest
	staff    map[string]bool
	order    []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bookings: map[string]model.Booking{},
		rooms:    map[string]roomModel.Room{},
		guests:   map[string]guestModel.Guest{},
		staff:    map[string]bool{},
	}
}

func (s *memoryStore) addRoom(id string, status roomModel.Status) {
	s.rooms[id] = roomModel.Room{ID: id, Name: id, Status: status, Active: true}
}

func (s *memoryStore) addGuest(id string) {
	s.guests[id] = guestModel.Guest{ID: id, FullName: id, Active: true}
}

func (s *memoryStore) room(id string) roomModel.Room {
	return s.rooms[id]
}

func (s *memoryStore) guest(id string) guestModel.Guest {
	return s.guests[id]
}

type snapshot struct {
	bookings map[string]model.Booking
	rooms    map[string]roomModel.Room
	guests   map[string]guestModel.Guest
	order    []string
}

func (s *memoryStore) snapshot() snapshot {
	return snapshot{
		bookings: maps.Clone(s.bookings),
		rooms:    maps.Clone(s.rooms),
		guests:   maps.Clone(s.guests),
		order:    slices.Clone(s.order),
	}
}

func (s *memoryStore) restore(snap snapshot) {
	s.bookings = snap.bookings
	s.rooms = snap.rooms
	s.guests = snap.guests
	s.order = snap.order
}

// filterValue finds the value an equality filter binds to field.
func filterValue(filter gDto.FilterGroup, field string) (any, bool) {
	for _, item := range filter.Filters {
		switch f := item.(type) {
		case gDto.Filter:
			if f.Field == field && f.Operator == gDto.FilterOperatorEq {
				return f.Value, true
			}
		case gDto.FilterGroup:
			if v, ok := filterValue(f, field); ok {
				return v, true
			}
		}
	}

	return nil, false
}

func filterID(filter gDto.FilterGroup) string {
	v, _ := filterValue(filter, "id")
	id, _ := v.(string)

	return id
}

func onlyActive(filter gDto.FilterGroup) bool {
	v, ok := filterValue(filter, "active")

	return ok && v == true
}

// transactor

type memoryTransactor struct {
	store *memoryStore
}

var _ postgres.Transactor = (*memoryTransactor)(nil)

func (t *memoryTransactor) WithTransaction(ctx context.Context, fn postgres.TxFunc) (err error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()

	defer func() {
		if recovered := recover(); recovered != nil {
			t.store.restore(snap)
			panic(recovered)
		}
	}()

	if err = fn(ctx, nil); err != nil {
		t.store.restore(snap)
	}

	return err
}

func (t *memoryTransactor) Lock(_ context.Context, _ *sqlx.Tx, _ ...string) error {
	return nil
}

// booking repository

type bookingStore struct{ *memoryStore }

func (s bookingStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(filter), nil
}

func (s bookingStore) GetTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	return s.find(filter), nil
}

func (s bookingStore) find(filter gDto.FilterGroup) model.Booking {
	booking, ok := s.bookings[filterID(filter)]
	if !ok || (onlyActive(filter) && !booking.Active) {
		return model.Booking{}
	}

	return booking
}

func (s bookingStore) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.Booking, 0, len(s.order))
	for _, id := range s.order {
		res = append(res, s.bookings[id])
	}

	return res, nil
}

func (s bookingStore) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bookings), nil
}

func (s bookingStore) InsertTx(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
	if _, ok := s.bookings[booking.ID]; ok {
		return fmt.Errorf("duplicate booking %s", booking.ID)
	}

	s.bookings[booking.ID] = booking
	s.order = append(s.order, booking.ID)

	return nil
}

func (s bookingStore) UpdateTx(_ context.Context, _ *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
	id := filterID(filter)

	booking, ok := s.bookings[id]
	if !ok {
		return 0, nil
	}

	for key, value := range mod {
		switch key {
		case model.FieldStaffID:
			booking.StaffID = value.(*string)
		case model.FieldGuestID:
			booking.GuestID = value.(*string)
		case model.FieldRoomID:
			booking.RoomID = value.(string)
		case model.FieldBookingDate:
			booking.BookingDate = value.(time.Time)
		case model.FieldCheckIn:
			booking.CheckIn = value.(*time.Time)
		case model.FieldCheckOut:
			booking.CheckOut = value.(*time.Time)
		case model.FieldOccupants:
			booking.Occupants = value.(int)
		case model.FieldSurcharge:
			booking.Surcharge = value.(float64)
		case model.FieldStatus:
			booking.Status = value.(model.Status)
		case model.FieldTotalCharge:
			booking.TotalCharge = value.(float64)
		case model.FieldActive:
			booking.Active = value.(bool)
		}
	}

	s.bookings[id] = booking

	return 1, nil
}

func (s bookingStore) blocking(roomID string) []model.Booking {
	var res []model.Booking

	for _, id := range s.order {
		booking := s.bookings[id]
		if booking.RoomID == roomID && booking.Blocking() {
			res = append(res, booking)
		}
	}

	return res
}

func (s bookingStore) GetBlockingByRoom(_ context.Context, roomID string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.blocking(roomID), nil
}

func (s bookingStore) GetBlockingByRoomTx(_ context.Context, _ *sqlx.Tx, roomID string) ([]model.Booking, error) {
	return s.blocking(roomID), nil
}

func (s bookingStore) GetDueForCheckIn(_ context.Context, now time.Time) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []model.Booking

	for _, id := range s.order {
		booking := s.bookings[id]
		stay, ok := booking.Interval()

		if booking.Active && booking.Status == model.StatusBooked && ok && !stay.Start.After(now) && stay.End.After(now) {
			res = append(res, booking)
		}
	}

	return res, nil
}

// room repository

type roomStore struct{ *memoryStore }

func (s roomStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(filter), nil
}

func (s roomStore) GetTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
	return s.find(filter), nil
}

func (s roomStore) find(filter gDto.FilterGroup) roomModel.Room {
	room, ok := s.rooms[filterID(filter)]
	if !ok || (onlyActive(filter) && !room.Active) {
		return roomModel.Room{}
	}

	return room
}

func (s roomStore) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Collect(maps.Values(s.rooms)), nil
}

func (s roomStore) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rooms), nil
}

func (s roomStore) UpdateTx(_ context.Context, _ *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
	id := filterID(filter)

	room, ok := s.rooms[id]
	if !ok {
		return 0, nil
	}

	if v, ok := mod[roomModel.FieldStatus]; ok {
		room.Status = v.(roomModel.Status)
	}

	if v, ok := mod[roomModel.FieldUpcoming]; ok {
		room.Upcoming = v.(bool)
	}

	if v, ok := mod[roomModel.FieldActive]; ok {
		room.Active = v.(bool)
	}

	s.rooms[id] = room

	return 1, nil
}

func (s roomStore) GetActiveIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string

	for id, room := range s.rooms {
		if room.Active {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids, nil
}

// guest repository

type guestStore struct{ *memoryStore }

func (s guestStore) GetByBooking(_ context.Context, bookingID string) ([]guestModel.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []guestModel.Guest

	for _, guest := range s.guests {
		if guest.Active && guest.BookingID != nil && *guest.BookingID == bookingID {
			res = append(res, guest)
		}
	}

	slices.SortFunc(res, func(a, b guestModel.Guest) int {
		if a.ID < b.ID {
			return -1
		}

		return 1
	})

	return res, nil
}

func (s guestStore) ExistTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
	guest, ok := s.guests[filterID(filter)]

	return ok && guest.Active, nil
}

func (s guestStore) CountActiveTx(_ context.Context, _ *sqlx.Tx, ids []string) (int, error) {
	count := 0

	for _, id := range ids {
		if guest, ok := s.guests[id]; ok && guest.Active {
			count++
		}
	}

	return count, nil
}

func (s guestStore) AttachTx(_ context.Context, _ *sqlx.Tx, ids []string, bookingID, _ string) ([]string, error) {
	var previous []string

	for _, id := range ids {
		guest, ok := s.guests[id]
		if !ok {
			continue
		}

		if guest.BookingID != nil && *guest.BookingID != bookingID {
			previous = append(previous, *guest.BookingID)
		}

		booking := bookingID
		guest.BookingID = &booking
		s.guests[id] = guest
	}

	return previous, nil
}

func (s guestStore) DetachTx(_ context.Context, _ *sqlx.Tx, bookingID string, keep []string, _ string) error {
	for id, guest := range s.guests {
		if guest.BookingID == nil || *guest.BookingID != bookingID || slices.Contains(keep, id) {
			continue
		}

		guest.BookingID = nil
		s.guests[id] = guest
	}

	return nil
}

// staff repository

type staffStore struct{ *memoryStore }

func (s staffStore) ExistTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
	return s.staff[filterID(filter)], nil
}

// side effects

type nopCache struct{}

var _ cache.RedisCache = nopCache{}

func (nopCache) Save(context.Context, string, any, int) error { return nil }
func (nopCache) Get(context.Context, string, any) error       { return fmt.Errorf("miss: %w", cache.Nil) }
func (nopCache) Delete(context.Context, string) error         { return nil }
func (nopCache) Clear(context.Context, string) error          { return nil }

// mapCache keeps JSON copies so cached reads behave like the Redis cache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

var _ cache.RedisCache = (*mapCache)(nil)

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Save(_ context.Context, key string, value any, _ int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = raw

	return nil
}

func (c *mapCache) Get(_ context.Context, key string, value any) error {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("miss %s: %w", key, cache.Nil)
	}

	return json.Unmarshal(raw, value)
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

func (c *mapCache) Clear(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	maps.DeleteFunc(c.entries, func(key string, _ []byte) bool {
		return strings.HasPrefix(key, prefix)
	})

	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]

	return ok
}

type nopKafka struct{}

var _ kafka.Client = nopKafka{}

func (nopKafka) SendMessages(context.Context, string, ...kafka.Message) error { return nil }
func (nopKafka) Close() error                                                 { return nil }
