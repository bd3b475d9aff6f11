// @title           Audition Hub API
// @version         1.0
// @description     Audition, expense and booking tracking for parents of child actors.
// @contact.name    Audition Hub
// @contact.email   support@auditionhub.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "auditionhub_backend/internal/app"

func main() {
	app.Run()
}
