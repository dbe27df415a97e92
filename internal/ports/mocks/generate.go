//go:generate mockgen -source=../check_repository.go -destination=./mock_check_repository.go -package=mocks
//go:generate mockgen -source=../registry.go         -destination=./mock_registry.go         -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../vat_service.go      -destination=./mock_vat_service.go      -package=mocks

package mocks
