// Command geobufd is a small HTTP service exposing the Geobuf codec over
// REST, for clients that would rather shell out to curl than vendor a Go
// dependency.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// CORS middleware for cross-origin requests.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.POST("/encode", handleEncode)
	router.POST("/decode", handleDecode)
	router.GET("/healthz", handleHealthz)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5084"
	}

	fmt.Printf("\n")
	fmt.Printf("============================================\n")
	fmt.Printf("  geobufd\n")
	fmt.Printf("  Running on http://localhost:%s\n", port)
	fmt.Printf("============================================\n")
	fmt.Printf("\n")

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
