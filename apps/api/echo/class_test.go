package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
	testutil "github.com/trezcool/mahudhurio/tests"
)

type classFixture struct {
	*apiFixture
	teacherA user.User
	teacherB user.User
	studentS user.User
	studentZ user.User
	classC   school.Class
}

func setupClasses(t *testing.T) *classFixture {
	f := &classFixture{apiFixture: setup(t)}
	f.teacherA = testutil.CreateUser(t, f.usrRepo, "Alice", "alice@mail.com", "passwd", user.RoleTeacher)
	f.teacherB = testutil.CreateUser(t, f.usrRepo, "Bob", "bob@mail.com", "passwd", user.RoleTeacher)
	f.studentS = testutil.CreateUser(t, f.usrRepo, "Sam", "sam@mail.com", "passwd", user.RoleStudent)
	f.studentZ = testutil.CreateUser(t, f.usrRepo, "Zoe", "zoe@mail.com", "passwd", user.RoleStudent)
	f.classC = testutil.CreateClass(t, f.clsRepo, "Grade 1", f.teacherA.ID, f.studentS.ID)
	return f
}

func Test_classApi_health(t *testing.T) {
	f := setup(t)

	req, rec := newRequest(http.MethodGet, "/class/health")
	f.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Class route is healthy!!", rec.Body.String())
}

func Test_classApi_auth(t *testing.T) {
	f := setupClasses(t)

	tests := []httpTest{
		{
			name:     "missing token fails",
			method:   http.MethodGet,
			path:     "/class/" + f.classC.ID.Hex(),
			wantCode: http.StatusUnauthorized,
			wantData: errEnvelope(t, "auth token not found"),
		},
		{
			name:     "invalid token fails",
			method:   http.MethodGet,
			path:     "/class/" + f.classC.ID.Hex(),
			token:    "not.a.token",
			wantCode: http.StatusUnauthorized,
			wantData: errEnvelope(t, "authorization denied"),
		},
		{
			name:     "student cannot look up classes",
			method:   http.MethodPost,
			path:     "/class",
			token:    getToken(t, f.studentS),
			body:     marchallObj(t, school.ClassLookup{ClassName: f.classC.ClassName}),
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "permission denied"),
		},
		{
			name:     "student cannot list students",
			method:   http.MethodGet,
			path:     "/class/students",
			token:    getToken(t, f.studentS),
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "permission denied"),
		},
		{
			name:     "student cannot enroll students",
			method:   http.MethodPost,
			path:     "/class/" + f.classC.ID.Hex() + "/add-student",
			token:    getToken(t, f.studentS),
			body:     marchallObj(t, school.AddStudent{StudentID: f.studentZ.ID.Hex()}),
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "permission denied"),
		},
		{
			name:     "teacher has no attendance of their own",
			method:   http.MethodGet,
			path:     "/class/" + f.classC.ID.Hex() + "/my-attendance",
			token:    getToken(t, f.teacherA),
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "permission denied"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_classLookup(t *testing.T) {
	f := setupClasses(t)
	token := getToken(t, f.teacherA)

	tests := []httpTest{
		{
			name:     "missing name fails",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"className": "this field is required"}),
		},
		{
			name:     "unknown name fails",
			body:     marchallObj(t, school.ClassLookup{ClassName: "Grade 13"}),
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "class not found"),
		},
		{
			name:     "known name succeeds",
			body:     marchallObj(t, school.ClassLookup{ClassName: f.classC.ClassName}),
			wantCode: http.StatusOK,
			wantData: okEnvelope(t, f.classC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/class", token, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_addStudent(t *testing.T) {
	f := setupClasses(t)
	path := "/class/" + f.classC.ID.Hex() + "/add-student"

	wantClass := f.classC
	wantClass.StudentIDs = []primitive.ObjectID{f.studentS.ID, f.studentZ.ID}

	tests := []httpTest{
		{
			name:     "owner can enroll, keeping order",
			token:    getToken(t, f.teacherA),
			path:     path,
			body:     marchallObj(t, school.AddStudent{StudentID: f.studentZ.ID.Hex()}),
			wantCode: http.StatusOK,
			wantData: okEnvelope(t, wantClass),
		},
		{
			name:     "non-owner cannot enroll",
			token:    getToken(t, f.teacherB),
			path:     path,
			body:     marchallObj(t, school.AddStudent{StudentID: f.studentZ.ID.Hex()}),
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "user not owner of class"),
		},
		{
			name:     "unknown class fails",
			token:    getToken(t, f.teacherA),
			path:     "/class/" + primitive.NewObjectID().Hex() + "/add-student",
			body:     marchallObj(t, school.AddStudent{StudentID: f.studentZ.ID.Hex()}),
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "class not found"),
		},
		{
			name:     "malformed class id fails",
			token:    getToken(t, f.teacherA),
			path:     "/class/nope/add-student",
			body:     marchallObj(t, school.AddStudent{StudentID: f.studentZ.ID.Hex()}),
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "class not found"),
		},
		{
			name:     "malformed student id fails",
			token:    getToken(t, f.teacherA),
			path:     path,
			body:     marchallObj(t, school.AddStudent{StudentID: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, "user not found"),
		},
		{
			name:     "unknown student fails",
			token:    getToken(t, f.teacherA),
			path:     path,
			body:     marchallObj(t, school.AddStudent{StudentID: primitive.NewObjectID().Hex()}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"studentId": "user not found"}),
		},
		{
			name:     "teacher cannot be enrolled",
			token:    getToken(t, f.teacherA),
			path:     path,
			body:     marchallObj(t, school.AddStudent{StudentID: f.teacherB.ID.Hex()}),
			wantCode: http.StatusBadRequest,
			wantData: errEnvelope(t, map[string]string{"studentId": "user is not a student"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, tt.token, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_classDetail(t *testing.T) {
	f := setupClasses(t)
	path := "/class/" + f.classC.ID.Hex()

	wantDetail := school.ClassDetail{
		ID:        f.classC.ID,
		ClassName: f.classC.ClassName,
		TeacherID: f.teacherA.ID,
		Students:  []user.User{f.studentS},
	}

	tests := []httpTest{
		{
			name:     "owner sees the class populated",
			token:    getToken(t, f.teacherA),
			path:     path,
			wantCode: http.StatusOK,
			wantData: okEnvelope(t, wantDetail),
		},
		{
			name:     "enrolled student sees the class",
			token:    getToken(t, f.studentS),
			path:     path,
			wantCode: http.StatusOK,
			wantData: okEnvelope(t, wantDetail),
		},
		{
			name:     "non-owner teacher is denied",
			token:    getToken(t, f.teacherB),
			path:     path,
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "user not owner of class"),
		},
		{
			name:     "unenrolled student is denied",
			token:    getToken(t, f.studentZ),
			path:     path,
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "student not enrolled in this class"),
		},
		{
			name:     "unknown class fails",
			token:    getToken(t, f.teacherA),
			path:     "/class/" + primitive.NewObjectID().Hex(),
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "class not found"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_studentList(t *testing.T) {
	f := setupClasses(t)

	req, rec := newAuthRequest(http.MethodGet, "/class/students", getToken(t, f.teacherA))
	f.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool        `json:"success"`
		Data    []user.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	// the hash never travels over the wire
	wantS, wantZ := f.studentS, f.studentZ
	wantS.PasswordHash, wantZ.PasswordHash = nil, nil
	assert.ElementsMatch(t, []user.User{wantS, wantZ}, resp.Data)
}

func Test_classApi_myAttendance(t *testing.T) {
	f := setupClasses(t)
	att := testutil.MarkAttendance(t, f.attRepo, f.classC.ID, f.studentS.ID, school.StatusPresent)
	path := "/class/" + f.classC.ID.Hex() + "/my-attendance"

	// Zoe is enrolled here but has no attendance entry yet.
	classD := testutil.CreateClass(t, f.clsRepo, "Grade 2", f.teacherA.ID, f.studentZ.ID)

	tests := []httpTest{
		{
			name:     "enrolled student with a record succeeds",
			token:    getToken(t, f.studentS),
			path:     path,
			wantCode: http.StatusOK,
			wantData: okEnvelope(t, school.StudentAttendance{ClassID: att.ClassID, Status: att.Status}),
		},
		{
			name:     "unenrolled student is denied",
			token:    getToken(t, f.studentZ),
			path:     path,
			wantCode: http.StatusForbidden,
			wantData: errEnvelope(t, "student not enrolled in this class"),
		},
		{
			name:     "enrolled student without a record fails",
			token:    getToken(t, f.studentZ),
			path:     "/class/" + classD.ID.Hex() + "/my-attendance",
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "attendance record not found"),
		},
		{
			name:     "unknown class fails",
			token:    getToken(t, f.studentS),
			path:     "/class/" + primitive.NewObjectID().Hex() + "/my-attendance",
			wantCode: http.StatusNotFound,
			wantData: errEnvelope(t, "class not found"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
