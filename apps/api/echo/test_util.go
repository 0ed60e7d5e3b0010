package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	inmemdb "github.com/trezcool/mahudhurio/storage/database/inmem"
)

type apiFixture struct {
	app     Server
	usrRepo user.Repository
	clsRepo school.ClassRepository
	attRepo school.AttendanceRepository
}

func setup(t *testing.T) *apiFixture {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	f := &apiFixture{
		usrRepo: inmemdb.NewUserRepository(db),
		clsRepo: inmemdb.NewClassRepository(db),
		attRepo: inmemdb.NewAttendanceRepository(db),
	}

	usrSvc := user.NewService(f.usrRepo, emailsvc.NewConsoleServiceMock())
	schoolSvc := school.NewService(f.clsRepo, f.attRepo, f.usrRepo)

	f.app = NewServer(
		"",  /* addr */
		nil, /* shutdown */
		&Deps{
			Logger:         logsvc.NewConsoleLogger(log.New(ioutil.Discard, "", 0)),
			UserSvc:        usrSvc,
			SchoolSvc:      schoolSvc,
			DisableReqLogs: true,
		},
	)
	return f
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// newAuthRequest builds a request carrying the raw token in the Authorization
// header, no "Bearer" scheme.
func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeader, token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func okEnvelope(t *testing.T, data interface{}) []byte {
	return marchallObj(t, response{Success: true, Data: data})
}

func errEnvelope(t *testing.T, msg interface{}) []byte {
	return marchallObj(t, response{Success: false, Error: msg})
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
