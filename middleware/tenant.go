package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
)

// ResolveBusiness looks up the tenant behind the :slug path parameter and
// stores it in locals for the portal handlers. Unknown slugs 404 without
// leaking whether the slug ever existed.
func ResolveBusiness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing business slug",
			})
		}

		var business models.Business
		if err := db.DB.Where("slug = ?", slug).First(&business).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business not found",
			})
		}

		c.Locals("business", &business)
		return c.Next()
	}
}

// BusinessFromLocals returns the tenant placed by ResolveBusiness.
func BusinessFromLocals(c *fiber.Ctx) *models.Business {
	business, _ := c.Locals("business").(*models.Business)
	return business
}
