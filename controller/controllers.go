// api/controller/controllers.go
package controller

import "github.com/farrowscore/api/service"

type Controllers struct {
	Game    *GameController
	Payment *PaymentController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Game:    NewGameController(services.Game),
		Payment: NewPaymentController(services.Access),
	}
}
