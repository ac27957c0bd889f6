package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildController(t *testing.T) {
	m, err := BuildController(usersEntity(), "/api/v1", testHeader())
	require.NoError(t, err)

	assert.Equal(t, "UserController", m.ClassName)
	assert.Equal(t, "/api/v1/users", m.BaseURL)
	assert.Equal(t, "IUserService", m.ServiceName)
	assert.Equal(t, "userService", m.ServiceField)
	require.Len(t, m.Endpoints, 5)

	byName := map[string]Endpoint{}
	for _, ep := range m.Endpoints {
		byName[ep.Name] = ep
	}

	assert.Equal(t, "POST", byName["Create"].HTTPMethod)
	assert.Equal(t, "", byName["Create"].Path)
	assert.Equal(t, "UserCreateDTO", byName["Create"].RequestBody)
	assert.Equal(t, "UserResponseDTO", byName["Create"].ResponseType)

	assert.Equal(t, "GET", byName["GetByID"].HTTPMethod)
	assert.Equal(t, "/{id}", byName["GetByID"].Path)

	assert.Equal(t, "PUT", byName["Update"].HTTPMethod)
	assert.Equal(t, "/{id}", byName["Update"].Path)
	assert.Equal(t, "UserUpdateDTO", byName["Update"].RequestBody)

	assert.Equal(t, "DELETE", byName["Delete"].HTTPMethod)
	assert.Empty(t, byName["Delete"].ResponseType, "delete responds with an empty envelope")

	list := byName["List"]
	assert.Equal(t, "GET", list.HTTPMethod)
	assert.Equal(t, "", list.Path)
	assert.Equal(t, "PageResult[UserResponseDTO]", list.ResponseType)
	require.Len(t, list.Params, 2)
	for _, p := range list.Params {
		assert.Equal(t, "query", p.Location)
		assert.False(t, p.Required)
	}
}

func TestControllerParamLocations(t *testing.T) {
	m, err := BuildController(usersEntity(), "/api/v1/", testHeader())
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/users", m.BaseURL, "trailing slash in base URL collapses")

	for _, ep := range m.Endpoints {
		if ep.Path == "/{id}" {
			assert.Equal(t, "path", ep.Params[0].Location)
			assert.True(t, ep.Params[0].Required)
		}
		if ep.RequestBody != "" {
			last := ep.Params[len(ep.Params)-1]
			assert.Equal(t, "body", last.Location)
			assert.True(t, last.Required)
		}
	}
}
