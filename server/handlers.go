package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyctransithub/transit-hub/accessibility"
	"github.com/nyctransithub/transit-hub/alerts"
	"github.com/nyctransithub/transit-hub/favorites"
	"github.com/nyctransithub/transit-hub/gtfsrt"
	"github.com/nyctransithub/transit-hub/i18n"
)

type healthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Stations: s.deps.Catalog.Len()})
}

func (s *Server) handleStations(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Catalog.ExpandStations())
}

func (s *Server) handleStationsForLine(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Catalog.StationsForLine(c.Param("line")))
}

func (s *Server) handleRealtimeTrains(c *gin.Context) {
	trains := []gtfsrt.TrainUpdate{}
	if s.deps.Trains != nil {
		trains = s.deps.Trains.TrainsOrEmpty(c.Request.Context(), c.Param("line"))
	}
	c.JSON(http.StatusOK, trains)
}

func (s *Server) handleAlerts(c *gin.Context) {
	list := []alerts.ServiceAlert{}
	if s.deps.Alerts != nil {
		list = s.deps.Alerts.FetchOrEmpty(c.Request.Context(), c.Param("alert_type"))
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleAccessibility(c *gin.Context) {
	outages := []accessibility.Outage{}
	if s.deps.Outages != nil {
		outages = s.deps.Outages.FetchOrEmpty(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"accessibility": outages})
}

func (s *Server) handleTranslate(c *gin.Context) {
	lang := c.DefaultQuery("lang", i18n.DefaultLanguage)
	if !i18n.Has(lang) {
		lang = i18n.DefaultLanguage
	}
	c.Header("Content-Language", lang)
	c.JSON(http.StatusOK, i18n.Lookup(lang))
}

func (s *Server) favoritesStore(c *gin.Context) (favorites.Store, bool) {
	if s.deps.Favorites == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "favorites store unavailable"})
		return nil, false
	}
	return s.deps.Favorites, true
}

func (s *Server) handleListFavorites(c *gin.Context) {
	store, ok := s.favoritesStore(c)
	if !ok {
		return
	}
	entries, err := store.List(c.Request.Context())
	if err != nil {
		s.log.Error("list favorites failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleAddFavorite(c *gin.Context) {
	store, ok := s.favoritesStore(c)
	if !ok {
		return
	}
	var e favorites.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station and route are required"})
		return
	}
	if err := store.Add(c.Request.Context(), e); err != nil {
		s.writeStoreError(c, "add favorite failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite added"})
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	store, ok := s.favoritesStore(c)
	if !ok {
		return
	}
	var e favorites.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station and route are required"})
		return
	}
	n, err := store.Remove(c.Request.Context(), e)
	if err != nil {
		s.writeStoreError(c, "remove favorite failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed", "removed": n})
}

func (s *Server) writeStoreError(c *gin.Context, msg string, err error) {
	if errors.Is(err, favorites.ErrInvalidEntry) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.log.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
