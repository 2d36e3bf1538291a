package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victtorciferri/business-management-system-sub005/booking"
)

// SlotCache memoizes advisory slot responses for a short TTL. Slot lists are
// advisory anyway (TryBook re-checks), so a stale entry can never cause a
// double booking; it can only show a slot that will then be rejected. Redis
// being down degrades to plain generator calls.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: 30 * time.Second}
}

func slotKey(businessID, staffID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%d:%s", businessID, staffID, serviceID, date)
}

func (c *SlotCache) Get(ctx context.Context, q booking.SlotQuery) ([]booking.Slot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, slotKey(q.BusinessID, q.StaffID, q.ServiceID, q.Date)).Bytes()
	if err != nil {
		return nil, false // miss or Redis down, either way fall through
	}
	var slots []booking.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, q booking.SlotQuery, slots []booking.Slot) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	key := slotKey(q.BusinessID, q.StaffID, q.ServiceID, q.Date)
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("slot cache set %s: %v", key, err)
	}
}

// InvalidateDay drops every cached slot list for one staff member on one
// date, across all services: a booking for one service can block overlapping
// slots of the others.
func (c *SlotCache) InvalidateDay(ctx context.Context, businessID, staffID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:%d:*:%s", businessID, staffID, date)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("slot cache invalidate %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("slot cache scan %s: %v", pattern, err)
	}
}

// InvalidateStaff drops every cached slot list for a staff member across all
// dates. Used when availability windows change, which affects whole weekdays
// rather than a single date.
func (c *SlotCache) InvalidateStaff(ctx context.Context, businessID, staffID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:%d:*", businessID, staffID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("slot cache invalidate %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("slot cache scan %s: %v", pattern, err)
	}
}
