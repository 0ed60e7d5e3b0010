package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/user"
)

type classApi struct {
	service *school.Service
	usrSvc  *user.Service
}

func registerClassAPI(e *echo.Echo, svc *school.Service, usrSvc *user.Service) {
	api := classApi{service: svc, usrSvc: usrSvc}

	g := e.Group("/class")
	g.GET("/health", api.health)

	// authed endpoints
	ag := g.Group("", authMiddleware)
	ag.POST("", api.classLookup, teacherMiddleware())
	ag.GET("/students", api.studentList, teacherMiddleware())
	ag.POST("/:id/add-student", api.addStudent, teacherMiddleware())
	ag.GET("/:id/my-attendance", api.myAttendance, studentMiddleware())
	ag.GET("/:id", api.classDetail)
}

func (api *classApi) health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Class route is healthy!!")
}

// classLookup returns a class summary looked up by name.
func (api *classApi) classLookup(ctx echo.Context) error {
	data := new(school.ClassLookup)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.service.LookupClassByName(ctx.Request().Context(), data.ClassName)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: cls})
}

// addStudent enrolls a student into a class owned by the calling teacher.
func (api *classApi) addStudent(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	classID, err := classIDParam(ctx)
	if err != nil {
		return err
	}

	data := new(school.AddStudent)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}
	studentID, err := primitive.ObjectIDFromHex(data.StudentID)
	if err != nil {
		return errUserNotFound
	}

	cls, err := api.service.AddStudent(ctx.Request().Context(), actor, classID, studentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: cls})
}

// classDetail returns a class with its students populated; allowed for the
// owning teacher and enrolled students.
func (api *classApi) classDetail(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	classID, err := classIDParam(ctx)
	if err != nil {
		return err
	}

	detail, err := api.service.GetClassDetail(ctx.Request().Context(), actor, classID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: detail})
}

// studentList returns all users with the student role.
func (api *classApi) studentList(ctx echo.Context) error {
	students, err := api.usrSvc.QueryStudents(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: students})
}

// myAttendance returns the calling student's attendance entry for the class.
func (api *classApi) myAttendance(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	classID, err := classIDParam(ctx)
	if err != nil {
		return err
	}

	att, err := api.service.GetStudentAttendance(ctx.Request().Context(), actor, classID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Data: att})
}

// classIDParam parses the :id path param; a malformed id cannot match any
// class and is reported as not found.
func classIDParam(ctx echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		return primitive.NilObjectID, school.ErrClassNotFound
	}
	return id, nil
}
