package main

import (
	"context"

	"github.com/shandysiswandi/vocatrack/internal/app"
)

// @title           Vocatrack API
// @version         1.0
// @description     Vocatrack issues rotating attendance codes for training sessions and verifies trainee check-ins.
// @contact.name    Contact Support
// @contact.url     https://vocatrack.id/contact
// @contact.email   support@vocatrack.id
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	application.Stop(ctx)
}
