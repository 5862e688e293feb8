package usecase

import "github.com/raizdiseno/crm-pyme/internal/domain/repository"

// TxRunner ejecuta un callback con repositorios atados a una única
// transacción: o se confirma todo o no se escribe nada.
type TxRunner interface {
	Run(fn func(
		customers repository.CustomerRepository,
		orders repository.OrderRepository,
	) error) error
}
