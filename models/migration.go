package models

import (
	"log"

	"github.com/quickcart/recon_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Order{}, &Payment{},
		&RawTransactionLog{}, &BankSettlement{},
		&RawEventArchive{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
