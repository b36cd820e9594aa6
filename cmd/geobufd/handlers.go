package main

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beetlebugorg/geobuf/pkg/geobuf"
)

// handleEncode accepts a GeoJSON body and returns Geobuf bytes.
//
// POST /encode?precision=6
func handleEncode(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is empty"})
		return
	}

	maxPrecision := uint64(0)
	if p := c.Query("precision"); p != "" {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid precision: " + err.Error()})
			return
		}
		maxPrecision = pow10(n)
	}

	data, err := geobuf.EncodeText(body, geobuf.EncoderOptions{MaxPrecision: maxPrecision})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/x-protobuf", data)
}

// handleDecode accepts a Geobuf body and returns GeoJSON text.
//
// POST /decode?pretty=1&sort-keys=1
func handleDecode(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is empty"})
		return
	}

	opts := geobuf.TextOptions{
		Indent:   c.Query("pretty") != "",
		SortKeys: c.Query("sort-keys") != "",
	}
	text, err := geobuf.DecodeToText(body, opts)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", text)
}

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func pow10(n uint64) uint64 {
	e := uint64(1)
	for i := uint64(0); i < n; i++ {
		e *= 10
	}
	return e
}
