package glsink

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Blades are expanded in a geometry shader: every triangle corner becomes a
// camera-independent quad of (width, length) rising along its normal.
const vertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;
layout(location = 3) in vec2 aSize;

uniform vec3 uOrigin;

out VS_OUT {
	vec3 normal;
	vec4 color;
	vec2 size;
} vs;

void main() {
	vs.normal = aNormal;
	vs.color = aColor;
	vs.size = aSize;
	gl_Position = vec4(aPosition + uOrigin, 1.0);
}
`

const geometryShader = `#version 410 core
layout(triangles) in;
layout(triangle_strip, max_vertices = 12) out;

in VS_OUT {
	vec3 normal;
	vec4 color;
	vec2 size;
} gs[];

uniform mat4 uViewProj;

out vec4 fColor;
out float fHeight;

void blade(int i) {
	vec3 base = gl_in[i].gl_Position.xyz;
	vec3 n = normalize(gs[i].normal);
	vec3 side = normalize(cross(n, abs(n.y) > 0.99 ? vec3(0, 0, 1) : vec3(0, 1, 0)));
	vec3 halfWidth = side * gs[i].size.x * 0.5;
	vec3 tip = n * gs[i].size.y;

	fColor = gs[i].color;
	fHeight = 0.0;
	gl_Position = uViewProj * vec4(base - halfWidth, 1.0);
	EmitVertex();
	gl_Position = uViewProj * vec4(base + halfWidth, 1.0);
	EmitVertex();
	fHeight = 1.0;
	gl_Position = uViewProj * vec4(base - halfWidth * 0.2 + tip, 1.0);
	EmitVertex();
	gl_Position = uViewProj * vec4(base + halfWidth * 0.2 + tip, 1.0);
	EmitVertex();
	EndPrimitive();
}

void main() {
	blade(0);
	blade(1);
	blade(2);
}
`

const fragmentShader = `#version 410 core
in vec4 fColor;
in float fHeight;

out vec4 FragColor;

void main() {
	FragColor = vec4(fColor.rgb * mix(0.4, 1.0, fHeight), fColor.a);
}
`

// compileProgram compiles and links the given stages. An empty geometry
// source skips that stage.
func compileProgram(vertexSrc, geometrySrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		src  string
		kind uint32
		name string
	}{
		{vertexSrc, gl.VERTEX_SHADER, "vertex"},
		{geometrySrc, gl.GEOMETRY_SHADER, "geometry"},
		{fragmentSrc, gl.FRAGMENT_SHADER, "fragment"},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		sh, err := compileShader(st.src, st.kind, st.name)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		defer gl.DeleteShader(sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return shader, nil
}
