package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildServiceNames(t *testing.T) {
	m, err := BuildService(usersEntity(), ServiceInterface, testHeader())
	require.NoError(t, err)

	assert.Equal(t, "IUserService", m.InterfaceName)
	assert.Equal(t, "UserServiceImpl", m.ImplName)
	assert.Equal(t, "UserRepository", m.RepositoryName)
	assert.Equal(t, "UserCreateDTO", m.CreateDTOName)
	assert.Equal(t, "UserUpdateDTO", m.UpdateDTOName)
	assert.Equal(t, "UserResponseDTO", m.ResponseDTOName)
	assert.Equal(t, "uuid.UUID", m.PrimaryKeyType)
	assert.Equal(t, "ID", m.PrimaryKeyField)
	assert.True(t, m.SoftDelete)
}

func TestBuildServiceMethods(t *testing.T) {
	m, err := BuildService(usersEntity(), ServiceImplementation, testHeader())
	require.NoError(t, err)
	require.Len(t, m.Methods, 5)

	byName := map[string]ServiceMethod{}
	for _, method := range m.Methods {
		byName[method.Name] = method
	}

	for _, name := range []string{"Create", "Update", "Delete"} {
		assert.True(t, byName[name].Transactional, "%s must be transactional", name)
	}
	for _, name := range []string{"GetByID", "List"} {
		assert.False(t, byName[name].Transactional, "%s must not be transactional", name)
	}

	assert.Equal(t, "UserResponseDTO", byName["Create"].ReturnType)
	assert.Empty(t, byName["Delete"].ReturnType)
	assert.Equal(t, "PageResult[UserResponseDTO]", byName["List"].ReturnType)

	// Soft-delete entities mark the row instead of removing it.
	deleteSteps := byName["Delete"].Steps
	require.NotEmpty(t, deleteSteps)
	var found bool
	for _, step := range deleteSteps {
		if step.Kind == StepDelete {
			assert.Contains(t, step.Detail, "deleted_at")
			found = true
		}
	}
	assert.True(t, found, "delete method has a delete step")

	createKinds := make([]StepKind, 0, len(byName["Create"].Steps))
	for _, step := range byName["Create"].Steps {
		createKinds = append(createKinds, step.Kind)
	}
	assert.Equal(t, []StepKind{StepConvertInput, StepInsert, StepLog, StepConvertOutput}, createKinds)
}

func TestBuildServiceFieldViews(t *testing.T) {
	m, err := BuildService(usersEntity(), ServiceImplementation, testHeader())
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "name", "bio"}, fieldNames(m.CreateFields))
	assert.Equal(t, []string{"email", "name", "bio"}, fieldNames(m.UpdateFields), "update view excludes the primary key")
	assert.Equal(t, []string{"id", "email", "name", "bio", "createdAt", "updatedAt"}, fieldNames(m.ResponseFields))
}
