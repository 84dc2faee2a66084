package controllers

import (
	"time"

	"consultancy-backend/database"
	"consultancy-backend/middlewares"
	"consultancy-backend/models"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

type invoiceStatusRequest struct {
	Status      models.InvoiceStatus `json:"status" validate:"required,enum"`
	PaymentDate *time.Time           `json:"payment_date"`
}

func CreateInvoice(c *fiber.Ctx) error {
	var in services.InvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	res, err := services.NewInvoiceService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func GetInvoices(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	invoices, err := services.NewInvoiceService(db).List(c.UserContext(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("invoices", invoices))
}

func GetInvoice(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	invoice, err := services.NewInvoiceService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

// NextInvoiceNumber previews the number the next created invoice would get.
func NextInvoiceNumber(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoice_number": services.NewInvoiceService(db).NextInvoiceNumber(c.UserContext())})
}

func UpdateInvoice(c *fiber.Ctx) error {
	var p services.InvoicePatch
	if err := middlewares.BindAndValidate(c, &p); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	res, err := services.NewInvoiceService(db).Update(c.UserContext(), c.Params("id"), p)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func SetInvoiceStatus(c *fiber.Ctx) error {
	var req invoiceStatusRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	res, err := services.NewInvoiceService(db).SetStatus(c.UserContext(), c.Params("id"), req.Status, req.PaymentDate)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GenerateInvoiceRevenue answers 201 when a revenue item was created and 200
// when one already existed.
func GenerateInvoiceRevenue(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	item, created, err := services.NewInvoiceService(db).GenerateRevenue(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"revenue": item, "created": created})
}

func DeleteInvoice(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	detached, err := services.NewInvoiceService(db).Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "invoice deleted", "revenue_detached": detached})
}

func GetInvoiceVersions(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	svc := services.NewInvoiceService(db)
	if _, err := svc.Get(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	versions, err := svc.Versions(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("versions", versions))
}
