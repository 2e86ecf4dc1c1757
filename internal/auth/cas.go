package auth

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/samber/lo"
)

const validateRetries = 3

// Authenticator resolves an opaque CAS ticket into a user identity.
type Authenticator interface {
	ValidateTicket(ctx context.Context, ticket string) (*User, error)
}

// CASClient talks to a CAS 2.0 server: it builds login/logout redirect URLs
// and validates service tickets against /serviceValidate.
type CASClient struct {
	cfg    CASConfig
	client *http.Client
}

var _ Authenticator = (*CASClient)(nil)

func NewCASClient(cfg CASConfig) *CASClient {
	return &CASClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// LoginURL is where the browser is sent to authenticate. CAS redirects back
// to the configured service URL with a ticket.
func (c *CASClient) LoginURL() string {
	return c.cfg.ServerURL + "/login?" + url.Values{"service": {c.cfg.ServiceURL}}.Encode()
}

// LogoutURL terminates the CAS single sign-on session and sends the browser
// back to the application.
func (c *CASClient) LogoutURL() string {
	return c.cfg.ServerURL + "/logout?" + url.Values{"service": {c.cfg.AppURL}}.Encode()
}

// ValidateTicket asks the CAS server whether the ticket is genuine and, if
// so, returns the identity it was issued for. Transient transport failures
// are retried; a CAS authenticationFailure answer is terminal.
func (c *CASClient) ValidateTicket(ctx context.Context, ticket string) (*User, error) {
	validateURL := c.cfg.ServerURL + "/serviceValidate?" + url.Values{
		"service": {c.cfg.ServiceURL},
		"ticket":  {ticket},
	}.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.fetch(ctx, validateURL)
			return err
		},
		retry.Attempts(validateRetries),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return parseValidateResponse(body)
}

func (c *CASClient) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		return nil, errx.New(fmt.Sprintf("cas server answered status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return body, nil
}

// serviceResponse mirrors the CAS 2.0 serviceValidate XML payload. Element
// matching is by local name, so the cas: namespace prefix is irrelevant.
type serviceResponse struct {
	XMLName xml.Name `xml:"serviceResponse"`
	Success *struct {
		User       string `xml:"user"`
		Attributes struct {
			Mail        string `xml:"mail"`
			Email       string `xml:"email"`
			GivenName   string `xml:"givenName"`
			FirstName   string `xml:"firstName"`
			SN          string `xml:"sn"`
			LastName    string `xml:"lastName"`
			DisplayName string `xml:"displayName"`
			CN          string `xml:"cn"`
		} `xml:"attributes"`
	} `xml:"authenticationSuccess"`
	Failure *struct {
		Code    string `xml:"code,attr"`
		Message string `xml:",chardata"`
	} `xml:"authenticationFailure"`
}

func parseValidateResponse(body []byte) (*User, error) {
	var resp serviceResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, errx.Wrap(err)
	}

	if resp.Success == nil || resp.Success.User == "" {
		e := errx.New(
			"cas ticket validation failed",
			errx.WithCode(CodeInvalidTicket),
			errx.WithType(errx.T_Authentication),
		)
		if resp.Failure != nil {
			e = errx.Wrap(e, errx.WithDetails(errx.D{
				"cas_code":    resp.Failure.Code,
				"cas_message": resp.Failure.Message,
			}))
		}
		return nil, e
	}

	attrs := resp.Success.Attributes
	user := &User{
		Username:    resp.Success.User,
		Email:       lo.CoalesceOrEmpty(attrs.Mail, attrs.Email),
		GivenName:   lo.CoalesceOrEmpty(attrs.GivenName, attrs.FirstName),
		Surname:     lo.CoalesceOrEmpty(attrs.SN, attrs.LastName),
		DisplayName: lo.CoalesceOrEmpty(attrs.DisplayName, attrs.CN, resp.Success.User),
	}

	return user, nil
}
