package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/mbarling-arch/MobileCRM-sub001/collections"
	"github.com/mbarling-arch/MobileCRM-sub001/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacySnapshots(app); err != nil {
			log.Printf("Warning: snapshot migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogMiddleware())

		// ── Deal CRUD ────────────────────────────────────────────
		se.Router.GET("/deals", handlers.HandleDealList(app))
		se.Router.POST("/deals", handlers.HandleDealCreate(app))
		se.Router.GET("/deals/{id}", handlers.HandleDealView(app))
		se.Router.DELETE("/deals/{id}", handlers.HandleDealDelete(app))

		// ── Deal builder ─────────────────────────────────────────
		se.Router.GET("/deals/{id}/builder", handlers.HandleBuilderView(app))
		se.Router.POST("/deals/{id}/builder/save", handlers.HandleBuilderSave(app))
		se.Router.POST("/deals/{id}/builder/categories/{categoryId}/toggle",
			handlers.HandleToggleCategory(app))
		se.Router.POST("/deals/{id}/builder/categories/{categoryId}/items",
			handlers.HandleAddItem(app))
		se.Router.DELETE("/deals/{id}/builder/categories/{categoryId}/items/{itemId}",
			handlers.HandleDeleteItem(app))
		se.Router.POST("/deals/{id}/builder/items/{itemId}/field",
			handlers.HandleItemFieldEdit(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/deals/{id}/builder/export/pdf",
			handlers.HandleBuilderExportPDF(app))
		se.Router.GET("/deals/{id}/builder/export/excel",
			handlers.HandleBuilderExportExcel(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
