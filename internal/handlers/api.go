// Package handlers contains the fiber handlers for the devotional web app:
// the JSON API consumed by clients, the bible verse proxy and the
// server-rendered reader page.
package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/dateutil"
	"github.com/atti-709/chliebnaskazdodenny-web/internal/devotional"
)

// cors opens the API to the static front-end regardless of origin.
func cors(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type")
}

// DevotionalsHandler serves the devotionals API:
//
//	?action=getByDate&date=YYYY-MM-DD
//	?action=getAll&limit=N
//	?action=getDates
func DevotionalsHandler(svc *devotional.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		cors(c)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}

		switch c.Query("action") {
		case "getByDate":
			date := c.Query("date")
			if _, err := dateutil.Parse(date); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
			}

			d, err := svc.ByDate(ctx, date)
			if err != nil {
				log.Printf("Error fetching devotional for %s: %v", date, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
			if d == nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Devotional not found"})
			}
			return c.JSON(d)

		case "getAll":
			limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(devotional.DefaultLimit)))
			if err != nil || limit <= 0 {
				limit = devotional.DefaultLimit
			}

			all, err := svc.All(ctx, limit)
			if err != nil {
				log.Printf("Error fetching devotionals: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
			return c.JSON(all)

		case "getDates":
			dates, err := svc.Dates(ctx)
			if err != nil {
				log.Printf("Error fetching dates: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
			return c.JSON(dates)

		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
		}
	}
}
