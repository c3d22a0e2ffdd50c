package main

import (
	"log"
	"os"

	"github.com/TungTV17/HostelFinder-sub001/routes"
	"github.com/TungTV17/HostelFinder-sub001/storage"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the landlord dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, X-Actor")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	properties := app.Party("/api/properties")
	{
		properties.Post("/", routes.CreateProperty)
		properties.Get("/", routes.ListProperties)
		properties.Get("/{id}", routes.GetProperty)
		properties.Get("/{propertyID}/rooms", routes.ListRooms)
		properties.Get("/{propertyID}/prices", routes.GetActivePrices)
		properties.Get("/{propertyID}/revenue", routes.RevenueSummary)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Post("/", routes.CreateRoom)
		rooms.Get("/{id}", routes.GetRoom)
		rooms.Get("/{roomID}/readings", routes.ListRoomReadings)
		rooms.Get("/{roomID}/invoices", routes.ListRoomInvoices)
	}

	catalog := app.Party("/api/services")
	{
		catalog.Post("/", routes.CreateService)
		catalog.Get("/", routes.ListServices)
		catalog.Post("/prices", routes.SetServicePrice)
	}

	readings := app.Party("/api/readings")
	{
		readings.Post("/", routes.RecordReading)
		readings.Patch("/{id}", routes.UpdateReading)
	}

	contracts := app.Party("/api/contracts")
	{
		contracts.Post("/", routes.CreateContract)
		contracts.Get("/{id}", routes.GetContract)
		contracts.Post("/roommates", routes.AddRoommate)
		contracts.Post("/{id}/terminate", routes.TerminateContract)
		contracts.Post("/{id}/extend", routes.ExtendContract)
		contracts.Post("/moveout/{roomID}/{tenantID}", routes.MoveOutTenant)
	}

	invoices := app.Party("/api/invoices")
	{
		invoices.Post("/", routes.GenerateInvoice)
		invoices.Get("/{id}", routes.GetInvoice)
		invoices.Post("/{id}/payment", routes.CollectPayment)
		invoices.Delete("/{id}", routes.DeleteInvoice)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("🚀 Hostel billing server listening on :" + port)
	app.Listen(":" + port)
}
