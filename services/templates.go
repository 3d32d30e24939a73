package services

import "html/template"

const emailLayout = `{{define "layout"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <div style="text-align: center; font-size: 24px; font-weight: bold; color: #16a34a;">{{.Restaurant}}</div>
    {{template "content" .}}
    <p style="color: #666; font-size: 12px; text-align: center; margin-top: 30px;">This is an automated email. Please do not reply.</p>
  </div>
</body>
</html>{{end}}`

const kitchenAlertEmail = `{{define "content"}}
<h2>New order {{.Order.OrderNumber}}</h2>
<p><strong>Customer:</strong> {{.Order.CustomerName}}{{if .Order.CustomerPhone}} ({{.Order.CustomerPhone}}){{end}}</p>
<p><strong>Pickup:</strong> {{.Order.PickupTime}}</p>
<p><strong>Payment:</strong> {{.Order.PaymentMethod}}</p>
<table style="width: 100%; border-collapse: collapse;">
  {{range .Order.Items}}
  <tr>
    <td>{{.Quantity}} × {{.Name}}{{if .ProteinChoice}} ({{.ProteinChoice}}){{end}}{{if .Notes}}<br><em>{{.Notes}}</em>{{end}}</td>
    <td style="text-align: right;">€{{.LineTotal.StringFixed 2}}</td>
  </tr>
  {{end}}
</table>
<p style="font-size: 18px;"><strong>Total: €{{.Order.Total.StringFixed 2}}</strong></p>
{{if .Order.Notes}}<p><strong>Notes:</strong> {{.Order.Notes}}</p>{{end}}
{{end}}`

const orderReadyEmail = `{{define "content"}}
<h2>Your order {{.Order.OrderNumber}} is ready for pickup!</h2>
<p>Dear {{.Order.CustomerName}},</p>
<p>Great news! Your order is now ready.</p>
<p><strong>Pickup location:</strong> {{.Settings.Address}}</p>
<p><strong>Contact:</strong> {{.Settings.Phone}}</p>
{{if .Settings.MapLink}}<p><a href="{{.Settings.MapLink}}">Open in Google Maps</a></p>{{end}}
<p><strong>Your requested pickup time:</strong> {{.Order.PickupTime}}</p>
<p>Please bring this email or your order number when you arrive.</p>
{{end}}`

const reservationReceivedEmail = `{{define "content"}}
<h2>New table reservation</h2>
<p><strong>Name:</strong> {{.Reservation.Name}}</p>
<p><strong>Email:</strong> {{.Reservation.Email}}</p>
{{if .Reservation.Phone}}<p><strong>Phone:</strong> {{.Reservation.Phone}}</p>{{end}}
<p><strong>Date:</strong> {{.Reservation.Date}}{{if .Reservation.Time}} at {{.Reservation.Time}}{{end}}</p>
<p><strong>Guests:</strong> {{.Reservation.Guests}}</p>
<p><strong>Menu:</strong> {{.Reservation.MenuLabel}}</p>
{{if .Reservation.Notes}}<p><strong>Notes:</strong> {{.Reservation.Notes}}</p>{{end}}
{{end}}`

const reservationConfirmedEmail = `{{define "content"}}
<h2 style="color: #16a34a;">Booking confirmed!</h2>
<p>Hello {{.Reservation.Name}},</p>
<p>Your table for <strong>{{.Reservation.Guests}} guests</strong> has been confirmed.</p>
<p><strong>Date:</strong> {{.Reservation.Date}}</p>
{{if .Reservation.Time}}<p><strong>Time:</strong> {{.Reservation.Time}}</p>{{end}}
<p>We look forward to seeing you at {{.Settings.Address}}!</p>
{{end}}`

const reservationCancelledEmail = `{{define "content"}}
<h2 style="color: #dc2626;">Reservation cancelled</h2>
<p>Hello {{.Reservation.Name}},</p>
<p>Your reservation for {{.Reservation.Guests}} guests on {{.Reservation.Date}}{{if .Reservation.Time}} at {{.Reservation.Time}}{{end}} has been cancelled.</p>
<p>If this was a mistake, please contact us at {{.Settings.Phone}}.</p>
{{end}}`

const passwordResetEmail = `{{define "content"}}
<h2>Password reset request</h2>
<p>Hello {{if .Admin.Name}}{{.Admin.Name}}{{else}}there{{end}},</p>
<p>Use the link below to choose a new password. It expires in {{.ExpiresIn}}.</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>If you did not request a password reset, you can ignore this email.</p>
{{end}}`

func mustTemplate(content string) *template.Template {
	return template.Must(template.Must(template.New("layout").Parse(emailLayout)).Parse(content))
}

var (
	kitchenAlertTmpl         = mustTemplate(kitchenAlertEmail)
	orderReadyTmpl           = mustTemplate(orderReadyEmail)
	reservationReceivedTmpl  = mustTemplate(reservationReceivedEmail)
	reservationConfirmedTmpl = mustTemplate(reservationConfirmedEmail)
	reservationCancelledTmpl = mustTemplate(reservationCancelledEmail)
	passwordResetTmpl        = mustTemplate(passwordResetEmail)
)
