package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/bible"
)

// BibleVerseHandler resolves a Slovak verse reference to its text:
//
//	?reference=Ján 3,16
func BibleVerseHandler(client *bible.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		cors(c)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}

		reference := c.Query("reference")
		if reference == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing reference"})
		}

		if _, err := bible.ParseReference(reference); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown reference"})
		}

		text, err := client.Verse(ctx, reference)
		if err != nil {
			log.Printf("Error fetching verse %q: %v", reference, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Verse lookup failed"})
		}

		return c.JSON(fiber.Map{
			"reference":   reference,
			"text":        text,
			"translation": bible.DefaultTranslation,
		})
	}
}
