package object_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/object"
)

type owner struct{}

type namedDefault struct {
	owner reflect.Type
	name  string
}

func (n *namedDefault) SetName(owner reflect.Type, name string) error {
	n.owner = owner
	n.name = name

	return nil
}

func TestVersion_AtLeast(t *testing.T) {
	assert.True(t, object.Version{Major: 1, Minor: 2}.AtLeast(object.KwOnlySince))
	assert.True(t, object.KwOnlySince.AtLeast(object.KwOnlySince))
	assert.False(t, object.Version{Major: 1, Minor: 0}.AtLeast(object.KwOnlySince))
	assert.True(t, object.Version{Major: 2}.AtLeast(object.KwOnlySince))
	assert.Equal(t, "1.2", object.CurrentVersion.String())
}

func TestDefaultHost_MakeDescriptor(t *testing.T) {
	h := object.NewHost(object.CurrentVersion)

	t.Run("default and factory are exclusive", func(t *testing.T) {
		_, err := h.MakeDescriptor(object.DescriptorSpec{
			Default:        1,
			DefaultFactory: object.Factory(func() any { return 1 }),
		})
		assert.Error(t, err)
	})

	t.Run("factory must be a Factory", func(t *testing.T) {
		_, err := h.MakeDescriptor(object.DescriptorSpec{
			Default:        object.Missing,
			DefaultFactory: func() any { return 1 },
		})
		assert.Error(t, err)
	})

	t.Run("kw_only on old host", func(t *testing.T) {
		old := object.NewHost(object.Version{Major: 1})
		_, err := old.MakeDescriptor(object.DescriptorSpec{
			Default:        object.Missing,
			DefaultFactory: object.Missing,
			KwOnly:         object.Flag(true),
		})
		assert.Error(t, err)
	})

	t.Run("nil default is a real default", func(t *testing.T) {
		f, err := h.MakeDescriptor(object.DescriptorSpec{Default: nil, DefaultFactory: object.Missing})
		require.NoError(t, err)
		assert.True(t, f.HasDefault())

		v, ok := f.DefaultValue()
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestDefaultHost_RegisterField(t *testing.T) {
	h := object.NewHost(object.CurrentVersion)
	def := &namedDefault{}

	f, err := h.MakeDescriptor(object.DescriptorSpec{Default: def, DefaultFactory: object.Missing, Init: true})
	require.NoError(t, err)

	ownerType := reflect.TypeFor[owner]()
	require.NoError(t, h.RegisterField(ownerType, "value", f))

	assert.Equal(t, "value", f.Name)
	assert.Equal(t, ownerType, f.Owner)
	assert.Equal(t, "value", def.name)
	assert.Equal(t, ownerType, def.owner)
}

func TestField_DefaultValueFactoryIsFresh(t *testing.T) {
	h := object.NewHost(object.CurrentVersion)

	f, err := h.MakeDescriptor(object.DescriptorSpec{
		Default:        object.Missing,
		DefaultFactory: object.Factory(func() any { return map[string]int{} }),
	})
	require.NoError(t, err)

	a, ok := f.DefaultValue()
	require.True(t, ok)

	b, _ := f.DefaultValue()
	a.(map[string]int)["x"] = 1

	assert.Empty(t, b)
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "Instance", object.FieldInstance.String())
	assert.Equal(t, "ClassVar", object.FieldClassVar.String())
}
