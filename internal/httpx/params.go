package httpx

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParamID reads a positive integer route parameter. Anything else is a 400.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id: "+raw)
	}
	return uint(id), nil
}
