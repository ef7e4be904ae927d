package custom

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"forum.GO/api"
	"forum.GO/cmd"
	corehooks "forum.GO/core/hooks"
	"forum.GO/cron"
	gqlregistry "forum.GO/graphql/registry"
	"forum.GO/hooks"
	entity "forum.GO/model/entity"
)

func init() {
	// Hook plugin: applied when hooks.Load builds the hook set.
	hooks.RegisterPlugin(func(h *hooks.Hooks) {
		// Normalize usernames before validation.
		h.RegisterInput.Register(func(ctx context.Context, data hooks.RegisterInputData,
			next corehooks.Next[hooks.RegisterInputData, hooks.RegisterInputData]) (hooks.RegisterInputData, error) {
			data.Input.Username = strings.TrimSpace(data.Input.Username)
			return next(ctx, data)
		})

		// Log every successful registration.
		h.UserRegistered.Register(func(ctx context.Context, u *entity.User) error {
			log.Printf("custom: user registered: %s", u.Username)
			return nil
		})
	})

	// GraphQL extension
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "ok"})
	})
}
