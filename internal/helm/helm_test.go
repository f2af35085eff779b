package helm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/helmsman/internal/execx"
	"github.com/cameronsjo/helmsman/internal/workload"
)

func TestTemplateArgs(t *testing.T) {
	tests := []struct {
		name string
		eff  workload.Effective
		want []string
	}{
		{
			name: "minimal",
			eff:  workload.Effective{Name: "edge", ReleaseName: "my-app", Chart: "/charts/nginx"},
			want: []string{"template", "my-app", "/charts/nginx"},
		},
		{
			name: "namespace only when set",
			eff: workload.Effective{
				ReleaseName: "my-app",
				Chart:       "/charts/nginx",
				Namespace:   "my-namespace",
			},
			want: []string{"template", "my-app", "/charts/nginx", "--namespace", "my-namespace"},
		},
		{
			name: "values then options in order",
			eff: workload.Effective{
				ReleaseName: "my-app",
				Chart:       "/charts/nginx",
				Namespace:   "my-namespace",
				Values:      []string{"/v/default.yaml", "/v/edge.yaml"},
				Options:     []string{"--skip-crds", "--set image.tag=latest"},
			},
			want: []string{
				"template", "my-app", "/charts/nginx",
				"--namespace", "my-namespace",
				"--values", "/v/default.yaml",
				"--values", "/v/edge.yaml",
				"--skip-crds", "--set image.tag=latest",
			},
		},
		{
			name: "duplicate values are kept",
			eff: workload.Effective{
				ReleaseName: "my-app",
				Chart:       "/charts/nginx",
				Values:      []string{"/v/a.yaml", "/v/a.yaml"},
			},
			want: []string{
				"template", "my-app", "/charts/nginx",
				"--values", "/v/a.yaml",
				"--values", "/v/a.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateArgs(tt.eff))
		})
	}
}

func TestClientTemplate(t *testing.T) {
	fake := &execx.FakeRunner{
		Script: []execx.FakeCall{execx.SucceedWith("helm", "kind: Deployment\n")},
	}
	client := NewClient("helm", fake)

	cmd, res, err := client.Template(context.Background(), workload.Effective{
		ReleaseName: "my-app",
		Chart:       "/charts/nginx",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "kind: Deployment\n", string(res.Stdout))
	assert.Equal(t, "helm template my-app /charts/nginx", cmd.String())
}

func TestClientUpdateDependencies(t *testing.T) {
	fake := &execx.FakeRunner{}
	client := NewClient("helm", fake)

	require.NoError(t, client.UpdateDependencies(context.Background(), "/charts/nginx"))
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"dependency", "update", "/charts/nginx"}, fake.Calls[0].Args)
}

func TestClientUpdateDependenciesFailure(t *testing.T) {
	fake := &execx.FakeRunner{
		Script: []execx.FakeCall{execx.FailWith("helm", 1, "no repository definition")},
	}
	client := NewClient("helm", fake)

	err := client.UpdateDependencies(context.Background(), "/charts/nginx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no repository definition")
}

func TestResolveBinOverride(t *testing.T) {
	bin, err := ResolveBin("/opt/helm3/helm")
	require.NoError(t, err)
	assert.Equal(t, "/opt/helm3/helm", bin)
}
