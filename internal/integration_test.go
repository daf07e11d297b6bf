package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiroom-backend/config"
	"epiroom-backend/internal/api"
	"epiroom-backend/internal/floorplan"
	"epiroom-backend/internal/model"
	"epiroom-backend/internal/poller"
	"epiroom-backend/internal/spatial"
	"epiroom-backend/internal/store"
)

// TestDashboardLifecycle walks the whole pipeline: an upstream planning
// feed is fetched, aggregated into floor listings, refreshed in place as
// time passes, and served over the HTTP API.
func TestDashboardLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	meetingStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	meetingEnd := meetingStart.Add(time.Hour)

	// 1. Upstream planning API.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.PlanningResponse{
			Activities: []model.Activity{
				{
					ID:             "a1",
					Title:          "Team standup",
					UnitName:       "Engineering",
					StartDate:      meetingStart,
					EndDate:        meetingEnd,
					Rooms:          []model.RoomRef{{ID: 1, Name: "Stark"}},
					ServiceManager: model.ServiceManagerIntra,
				},
				{
					ID:        "unplaced",
					Title:     "No room attached",
					StartDate: meetingStart,
					EndDate:   meetingEnd,
				},
			},
		})
	}))
	defer upstream.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{PlanningURL: upstream.URL, TimeoutSeconds: 5},
		Poller: config.PollerConfig{
			Enabled:         true,
			FetchInterval:   2 * time.Minute,
			RefreshInterval: 30 * time.Second,
		},
	}

	rooms := &floorplan.Registry{
		Floors: []floorplan.Floor{
			{
				Floor: 0,
				Rooms: []model.RoomDescriptor{
					{Name: "Stark", Type: model.RoomTypeRoom, Floor: 0},
					{Name: "Bulma", Type: model.RoomTypeOffice, Floor: 0},
				},
			},
		},
	}
	regions := &spatial.Registry{
		Canvas: map[string]spatial.Canvas{"0": {W: 1137, H: 627}},
		Rooms: map[string]spatial.Region{
			"Stark": {Floor: 0, Points: []spatial.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
		},
	}
	require.NoError(t, regions.Validate(rooms))

	// 2. First fetch: the meeting is 30 minutes out, so Stark is soon.
	snap := store.New()
	svc := poller.NewService(cfg, rooms, snap)
	require.NoError(t, svc.FetchOnce(context.Background()))
	snap.Reclassify(now)

	router := api.NewRouter(
		api.NewHandler(snap, rooms, regions, cfg.Upstream),
		&config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTLSeconds: 60},
	)

	getFloors := func() []model.FloorListing {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/floors", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Floors []model.FloorListing `json:"floors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Floors
	}

	floors := getFloors()
	require.Len(t, floors, 1)
	stark := floors[0].Rooms[0]
	assert.Equal(t, "Stark", stark.Name)
	assert.Equal(t, model.StatusSoon, stark.Status)
	require.NotNil(t, stark.NextReservation)
	assert.Equal(t, "a1", stark.NextReservation.ID)

	// The roomless activity is attributed nowhere.
	for _, room := range floors[0].Rooms {
		for _, res := range room.Reservations {
			assert.NotEqual(t, "unplaced", res.ID)
		}
	}

	// 3. The fast timer path: no re-fetch, status flips as time passes.
	snap.Reclassify(meetingStart.Add(10 * time.Minute))
	stark = getFloors()[0].Rooms[0]
	assert.Equal(t, model.StatusOccupied, stark.Status)

	snap.Reclassify(meetingEnd)
	stark = getFloors()[0].Rooms[0]
	assert.Equal(t, model.StatusFree, stark.Status)
}
