// utils/sms.go
package utils

import (
	"os"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NewSMSClient builds a Twilio client from the environment.
func NewSMSClient() *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTH_TOKEN"),
	})
}

// SendSMS sends a message to the given number, over WhatsApp when the
// number is in E.164 format.
func SendSMS(client *twilio.RestClient, toNumber, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)

	if strings.HasPrefix(toNumber, "+") {
		params.SetTo("whatsapp:" + toNumber)
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetTo(toNumber)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	_, err := client.Api.CreateMessage(params)
	return err
}
