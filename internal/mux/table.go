package mux

import (
	"context"
	"errors"
	"net/http"
	"time"

	"holdem-server/pkg/room"
)

const snapshotTimeout = time.Second * 5

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
		defer cancel()

		state, err := m.dealer.Snapshot(ctx)
		if err != nil {
			if errors.Is(err, room.ErrDealerClosed) {
				writeJSONError(w, http.StatusServiceUnavailable, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
