package compute

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/plife/internal/life"
)

//go:embed shaders/accel.comp
var accelShaderSource string

const workGroupSize = 256

// OpenGLBackend evaluates the kernel as a compute shader. It needs a current
// OpenGL 4.3 context on the calling thread, both at construction and on
// every Accelerate call.
type OpenGLBackend struct {
	program   uint32
	ssboIn    uint32
	ssboForce uint32
	ssboOut   uint32
	renderer  string

	particles []float32
	outcome   []float32
}

func NewOpenGLBackend() (*OpenGLBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: opengl: %v", ErrAcceleratorUnavailable, err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	if !supportsCompute(version) {
		return nil, fmt.Errorf("%w: opengl %q has no compute shaders", ErrAcceleratorUnavailable, version)
	}

	program, err := createComputeProgram(accelShaderSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcceleratorUnavailable, err)
	}

	o := &OpenGLBackend{
		program:  program,
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	gl.GenBuffers(1, &o.ssboIn)
	gl.GenBuffers(1, &o.ssboForce)
	gl.GenBuffers(1, &o.ssboOut)
	return o, nil
}

func (o *OpenGLBackend) Name() string { return "opengl (" + o.renderer + ")" }

func (o *OpenGLBackend) Cleanup() {
	buffers := []uint32{o.ssboIn, o.ssboForce, o.ssboOut}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteProgram(o.program)
}

func (o *OpenGLBackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	n := len(particles)
	if n == 0 {
		return
	}

	o.particles = FlattenParticles(particles, o.particles[:0])
	flatForces := forces.Flatten()
	if cap(o.outcome) < n*OutcomeStride {
		o.outcome = make([]float32, n*OutcomeStride)
	}
	o.outcome = o.outcome[:n*OutcomeStride]

	upload(o.ssboIn, 0, o.particles, gl.DYNAMIC_DRAW)
	upload(o.ssboForce, 1, flatForces, gl.DYNAMIC_DRAW)
	upload(o.ssboOut, 2, o.outcome, gl.DYNAMIC_READ)

	k := ConstantsFor(params, mode)
	gl.UseProgram(o.program)
	gl.Uniform1i(o.uniform("numParticles"), int32(n))
	gl.Uniform1i(o.uniform("numColors"), life.NumColors)
	gl.Uniform1f(o.uniform("worldUnit"), k.WorldUnit)
	gl.Uniform1f(o.uniform("forceScalar"), k.ForceScalar)
	gl.Uniform1f(o.uniform("repelRadius"), k.RepelRadius)
	gl.Uniform1f(o.uniform("maxForce"), k.MaxAppliedForce)
	gl.Uniform1i(o.uniform("mode"), k.Mode)

	groups := (n + workGroupSize - 1) / workGroupSize
	gl.DispatchCompute(uint32(groups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.BUFFER_UPDATE_BARRIER_BIT)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, o.ssboOut)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(o.outcome)*4, gl.Ptr(&o.outcome[0]))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)

	addOutcomes(particles, o.outcome)
}

func (o *OpenGLBackend) uniform(name string) int32 {
	return gl.GetUniformLocation(o.program, gl.Str(name+"\x00"))
}

func upload(buffer, binding uint32, data []float32, usage uint32) {
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buffer)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(data)*4, gl.Ptr(data), usage)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, buffer)
}

// supportsCompute reports whether a GL_VERSION string is at least 4.3.
func supportsCompute(version string) bool {
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return false
	}
	parts := strings.SplitN(fields[0], ".", 3)
	if len(parts) < 2 {
		return false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return major > 4 || (major == 4 && minor >= 3)
}

func createComputeProgram(source string) (uint32, error) {
	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)
	gl.DeleteShader(shader)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link compute program")
	}
	return program, nil
}
