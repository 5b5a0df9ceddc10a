package pdfgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"travelorbit-be/internal/entity"
)

// BuildBookingPDF renders a paid trip as a printable confirmation: booking
// header, traveller list, day-by-day itinerary and a QR code carrying the
// booking number for on-site verification.
func BuildBookingPDF(trip *entity.Trip) ([]byte, error) {
	if trip.BookingNumber == nil {
		return nil, fmt.Errorf("trip %s has no booking number", trip.Id)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TravelOrbit Booking "+*trip.BookingNumber, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(30, 60, 120)
	pdf.Cell(0, 12, "TravelOrbit")
	pdf.Ln(14)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tripHeading(trip))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	writeField(pdf, "Booking Number", *trip.BookingNumber)
	if trip.FromCity != nil && trip.ToCity != nil {
		writeField(pdf, "Route", fmt.Sprintf("%s to %s", *trip.FromCity, *trip.ToCity))
	}
	if trip.StartDate != nil {
		dates := trip.StartDate.Format("02 Jan 2006")
		if trip.EndDate != nil {
			dates += " - " + trip.EndDate.Format("02 Jan 2006")
		}
		writeField(pdf, "Dates", dates)
	}
	if trip.DurationDays != nil {
		writeField(pdf, "Duration", fmt.Sprintf("%d days", *trip.DurationDays))
	}
	if trip.TotalPrice != nil {
		writeField(pdf, "Total Paid", fmt.Sprintf("%s %.2f", trip.Currency, *trip.TotalPrice))
	}
	pdf.Ln(4)

	if len(trip.Passengers) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Travellers")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for i, p := range trip.Passengers {
			line := fmt.Sprintf("%d. %s (%s)", i+1, p.Name, p.Role)
			if p.Age != nil {
				line = fmt.Sprintf("%d. %s (%s, age %d)", i+1, p.Name, p.Role, *p.Age)
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if trip.Itinerary != nil {
		writeItinerary(pdf, trip.Itinerary)
	}

	if err := stampQRCode(pdf, trip); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func tripHeading(trip *entity.Trip) string {
	if trip.Title != nil && *trip.Title != "" {
		return *trip.Title
	}
	if trip.ToCity != nil {
		return "Trip to " + *trip.ToCity
	}
	return "Trip Confirmation"
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(45, 6, label+":")
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, value)
	pdf.Ln(7)
}

func writeItinerary(pdf *gofpdf.Fpdf, itin *entity.Itinerary) {
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Itinerary")
	pdf.Ln(8)

	if itin.Hotel != nil && itin.Hotel.Name != "" {
		pdf.SetFont("Arial", "I", 11)
		hotel := "Stay: " + itin.Hotel.Name
		if itin.Hotel.Area != "" {
			hotel += ", " + itin.Hotel.Area
		}
		pdf.Cell(0, 6, hotel)
		pdf.Ln(8)
	}

	for _, day := range itin.Days {
		pdf.SetFont("Arial", "B", 11)
		heading := fmt.Sprintf("Day %d", day.Day)
		if day.Title != "" {
			heading += ": " + day.Title
		}
		pdf.Cell(0, 6, heading)
		pdf.Ln(6)

		pdf.SetFont("Arial", "", 10)
		for _, act := range day.Activities {
			line := "  - " + act.Name
			if act.Time != "" {
				line = fmt.Sprintf("  - %s (%s)", act.Name, act.Time)
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(2)
	}
}

func stampQRCode(pdf *gofpdf.Fpdf, trip *entity.Trip) error {
	payload := strings.Join([]string{*trip.BookingNumber, trip.Id.String()}, "|")
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qr encode failed: %w", err)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("booking-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("booking-qr", 160, 20, 35, 35, false, imageOpts, 0, "")
	return nil
}
