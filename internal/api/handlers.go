// Copyright (c) 2023-2024, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/choria-io/booking"
	"github.com/gin-gonic/gin"
)

// FieldRequest sets a single field of a session
type FieldRequest struct {
	Section string `json:"section" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   any    `json:"value"`
}

// ToggleRequest sets a boolean flag
type ToggleRequest struct {
	Value bool `json:"value"`
}

// SessionResponse describes a session
type SessionResponse struct {
	ID    string        `json:"id"`
	State booking.State `json:"state"`
}

func (s *Server) createHandler(c *gin.Context) {
	id, state, err := s.Create()
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{ID: id, State: state})
}

func (s *Server) getHandler(c *gin.Context) {
	s.respond(c, func(*booking.Controller) error { return nil })
}

func (s *Server) discardHandler(c *gin.Context) {
	err := s.Discard(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) setFieldHandler(c *gin.Context) {
	var req FieldRequest
	if !bind(c, &req) {
		return
	}

	s.respond(c, func(bc *booking.Controller) error {
		section, err := booking.ParseSection(req.Section)
		if err != nil {
			return err
		}

		return bc.SetField(section, req.Field, req.Value)
	})
}

func (s *Server) contactMethodHandler(c *gin.Context) {
	var req ToggleRequest
	if !bind(c, &req) {
		return
	}

	s.respond(c, func(bc *booking.Controller) error {
		method, err := booking.ParseContactMethod(c.Param("method"))
		if err != nil {
			return err
		}

		return bc.ToggleContactMethod(method, req.Value)
	})
}

func (s *Server) selectAllHandler(c *gin.Context) {
	var req ToggleRequest
	if !bind(c, &req) {
		return
	}

	s.respond(c, func(bc *booking.Controller) error {
		bc.ToggleSelectAll(req.Value)
		return nil
	})
}

func (s *Server) toggleSectionHandler(c *gin.Context) {
	s.respond(c, func(bc *booking.Controller) error {
		section, err := booking.ParseSection(c.Param("section"))
		if err != nil {
			return err
		}

		return bc.ToggleSection(section)
	})
}

func (s *Server) resetHandler(c *gin.Context) {
	s.respond(c, func(bc *booking.Controller) error {
		bc.Reset()
		return nil
	})
}

func (s *Server) submitHandler(c *gin.Context) {
	res, err := s.Submit(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrSessionNotFound):
		abort(c, err)
	case err != nil:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case !res.Submitted:
		c.JSON(http.StatusUnprocessableEntity, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (s *Server) countriesHandler(c *gin.Context) {
	idx := s.Index()

	c.JSON(http.StatusOK, gin.H{"countries": idx.Countries(), "cities": idx.Map(), "locationStatus": s.LocationStatus()})
}

func (s *Server) citiesHandler(c *gin.Context) {
	cities, ok := s.Index().Map()[c.Param("country")]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown country " + c.Param("country")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"country": c.Param("country"), "cities": cities})
}

func (s *Server) refreshHandler(c *gin.Context) {
	status := s.RefreshLocations(c.Request.Context())

	code := http.StatusOK
	if status != booking.LocationsReady {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"locationStatus": status})
}

// respond applies cb to the session and writes the resulting state
func (s *Server) respond(c *gin.Context, cb func(*booking.Controller) error) {
	state, err := s.Update(c.Param("id"), cb)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{ID: c.Param("id"), State: state})
}

func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	switch {
	case errors.Is(err, io.EOF):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
		return false
	case err != nil:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}

	return true
}

func abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTooManySessions):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrUnknownSection), errors.Is(err, booking.ErrUnknownField),
		errors.Is(err, booking.ErrInvalidValue), errors.Is(err, booking.ErrUnknownContactMethod):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
