package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"

	"savora/catalog"
	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetPickupQR returns a signed pickup QR for the caller's order as a PNG.
func GetPickupQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, ok := utils.ParseObjectID(ps.ByName("order_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "user": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetPickupQR find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	payload := GeneratePickupPayload(order.ID.Hex(), userID.Hex())
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		log.Println("GetPickupQR encode error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GetReceipt renders the order as a PDF with a pickup QR in the corner.
func GetReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, ok := utils.ParseObjectID(ps.ByName("order_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "user": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetReceipt find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	store, err := catalog.FindStoreByID(ctx, order.Store)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Println("GetReceipt store error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve store")
		return
	}

	lines, total, err := receiptLines(ctx, order)
	if err != nil {
		log.Println("GetReceipt lines error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not resolve order items")
		return
	}

	payload := GeneratePickupPayload(order.ID.Hex(), userID.Hex())
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		log.Println("GetReceipt qr error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.ID.Hex()))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Store: %s", store.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment: %s", order.PaymentMethod))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Deliver to: %s", order.ShipLocation.Address))
	pdf.Ln(12)

	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %.2f", total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("GetReceipt pdf error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.ID.Hex()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// receiptLines resolves each order item against the dish catalog and prices
// it, toppings included. Dishes deleted since checkout render as "(removed)".
func receiptLines(ctx context.Context, order models.Order) ([]string, float64, error) {
	groups, err := catalog.FindToppingGroupsByStore(ctx, order.Store)
	if err != nil {
		return nil, 0, err
	}
	toppingPrice := make(map[string]float64)
	for _, g := range groups {
		for _, t := range g.Toppings {
			toppingPrice[t.ID.Hex()] = t.Price
		}
	}

	var lines []string
	var total float64
	for _, item := range order.Items {
		dish, err := catalog.FindDishByID(ctx, item.Dish)
		if err == mongo.ErrNoDocuments {
			lines = append(lines, fmt.Sprintf("%dx (removed)", item.Quantity))
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		lineTotal := dish.Price * float64(item.Quantity)
		for _, tid := range item.Toppings {
			lineTotal += toppingPrice[tid.Hex()] * float64(item.Quantity)
		}
		total += lineTotal
		lines = append(lines, fmt.Sprintf("%dx %s - %.2f", item.Quantity, dish.Name, lineTotal))
	}
	return lines, total, nil
}

// ScanPickup verifies a scanned QR payload and marks the order delivered.
func ScanPickup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	payload := r.URL.Query().Get("payload")
	if payload == "" {
		utils.RespondError(w, http.StatusBadRequest, "Payload is required")
		return
	}

	orderHex, _, err := VerifyPickupQR(payload)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	orderID, ok := utils.ParseObjectID(orderHex)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !CanTransition(order.Status, models.StatusDelivered) {
		utils.RespondError(w, http.StatusBadRequest, "Order is not ready for pickup")
		return
	}

	update := bson.M{"$set": bson.M{"status": models.StatusDelivered}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, update); err != nil {
		log.Println("ScanPickup update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Order picked up", nil)
}
