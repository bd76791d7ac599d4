package ident

import (
	"strconv"
	"time"

	"github.com/conorfennell/kioku/internal/domain"
)

// Next returns a card id for a card created at now: the creation time in
// epoch milliseconds, moved forward until taken reports it unused.
func Next(now time.Time, taken func(domain.CardID) bool) domain.CardID {
	ms := now.UnixMilli()
	for {
		id := domain.CardID(strconv.FormatInt(ms, 10))
		if taken == nil || !taken(id) {
			return id
		}
		ms++
	}
}

// Created recovers the creation time encoded in an id. Ids that are not
// epoch milliseconds return ok == false.
func Created(id domain.CardID) (time.Time, bool) {
	ms, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
