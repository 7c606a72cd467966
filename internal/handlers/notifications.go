package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

func GetNotifications(c *fiber.Ctx) error {
	filter := services.NotificationFilter{
		Type: c.Query("type"),
	}

	if read := c.Query("read"); read != "" {
		parsed, err := strconv.ParseBool(read)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültiger Wert für read")
		}
		filter.Read = &parsed
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset", "0"))

	list, err := services.GetNotifications(filter)
	if err != nil {
		return respondServerError(c, err, "Benachrichtigungen konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, list)
}

func CreateNotificationHandler(c *fiber.Ctx) error {
	var req models.CreateNotificationRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	notification, err := services.CreateNotification(req)
	if err != nil {
		return respondServerError(c, err, "Benachrichtigung konnte nicht erstellt werden")
	}
	return respondData(c, fiber.StatusCreated, notification)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Benachrichtigungs-ID")
	}

	notification, err := services.MarkAsRead(notificationID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, CodeNotifNotFound, "Benachrichtigung nicht gefunden")
		}
		return respondServerError(c, err, "Benachrichtigung konnte nicht aktualisiert werden")
	}
	return respondData(c, fiber.StatusOK, notification)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	count, err := services.MarkAllAsRead()
	if err != nil {
		return respondServerError(c, err, "Benachrichtigungen konnten nicht aktualisiert werden")
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"count": count})
}

func DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Benachrichtigungs-ID")
	}

	if err := services.DeleteNotification(notificationID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, CodeNotifNotFound, "Benachrichtigung nicht gefunden")
		}
		return respondServerError(c, err, "Benachrichtigung konnte nicht gelöscht werden")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func DeleteReadNotifications(c *fiber.Ctx) error {
	count, err := services.DeleteAllRead()
	if err != nil {
		return respondServerError(c, err, "Benachrichtigungen konnten nicht gelöscht werden")
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"count": count})
}
