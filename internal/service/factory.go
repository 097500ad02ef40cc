package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

type AppServices struct {
	UserService        *UserService
	CustomerService    *CustomerService
	TransactionService *TransactionService
}

type FactoryArgs struct {
	UOW       uow.UOW
	JWTSecret []byte
	Hasher    PasswordHasher
	Publisher EventPublisher
	Logger    logrus.FieldLogger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(args.UOW, args.JWTSecret, args.Hasher)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	customerService, customerServiceErr := NewCustomerService(args.UOW, args.Publisher, args.Logger)
	if customerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", customerServiceErr.Error())
	}

	transactionService, transactionServiceErr := NewTransactionService(args.UOW, args.Publisher, args.Logger)
	if transactionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transactionServiceErr.Error())
	}

	return &AppServices{
		UserService:        userService,
		CustomerService:    customerService,
		TransactionService: transactionService,
	}, nil
}
