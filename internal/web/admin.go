package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

func (s *Server) setupAdminRoutes() error {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return fmt.Errorf("generating admin token: %w", err)
	}
	s.adminToken = hex.EncodeToString(token)

	s.engine.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	s.engine.POST("/admin/login", s.handleAdminLogin)
	s.engine.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := s.engine.Group("/admin")
	group.Use(s.adminAuth())
	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.Store.Stats(c.Request.Context())
		if err != nil {
			s.Logger.Error("error loading admin stats", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})
	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.Store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
	return nil
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	admin := s.Config.Admin

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
	if !userOK || !passOK {
		s.Logger.Warn("failed admin login", "client", s.Store.Hash(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
	s.Logger.Info("admin login", "client", s.Store.Hash(c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/api/stats")
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
