// This file is part of Texcache.
//
// Texcache is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Texcache is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Texcache.  If not, see <https://www.gnu.org/licenses/>.

// Package gl32 implements gpu.Device with OpenGL 3.2 core. A current OpenGL
// context is required before calling NewDevice() and every method must be
// called on the thread that owns the context.
package gl32

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/logger"
)

// S3TC formats are an extension and are not part of the core profile
// bindings.
const (
	compressedRGBS3TCDXT1  = 0x83f0
	compressedRGBAS3TCDXT1 = 0x83f1
	compressedRGBAS3TCDXT3 = 0x83f2
	compressedRGBAS3TCDXT5 = 0x83f3
)

// glFormat is how a gpu.Format is expressed to OpenGL.
type glFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

var formats = map[gpu.Format]glFormat{
	gpu.R8:              {gl.R8, gl.RED, gl.UNSIGNED_BYTE},
	gpu.RG8:             {gl.RG8, gl.RG, gl.UNSIGNED_BYTE},
	gpu.RGBA4:           {gl.RGBA4, gl.BGRA, gl.UNSIGNED_SHORT_4_4_4_4_REV},
	gpu.RGB5A1:          {gl.RGB5_A1, gl.RGBA, gl.UNSIGNED_SHORT_5_5_5_1},
	gpu.A1RGB5:          {gl.RGB5_A1, gl.BGRA, gl.UNSIGNED_SHORT_1_5_5_5_REV},
	gpu.R5G6B5:          {gl.RGB8, gl.RGB, gl.UNSIGNED_SHORT_5_6_5},
	gpu.BGRA8:           {gl.RGBA8, gl.BGRA, gl.UNSIGNED_INT_8_8_8_8},
	gpu.R16:             {gl.R16, gl.RED, gl.UNSIGNED_SHORT},
	gpu.RG16:            {gl.RG16, gl.RG, gl.UNSIGNED_SHORT},
	gpu.RG16F:           {gl.RG16F, gl.RG, gl.HALF_FLOAT},
	gpu.RGBA16F:         {gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT},
	gpu.RGBA32F:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	gpu.R32F:            {gl.R32F, gl.RED, gl.FLOAT},
	gpu.Depth16:         {gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT},
	gpu.Depth24Stencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
	gpu.DXT1:            {compressedRGBS3TCDXT1, gl.RGBA, gl.UNSIGNED_BYTE},
	gpu.DXT1A:           {compressedRGBAS3TCDXT1, gl.RGBA, gl.UNSIGNED_BYTE},
	gpu.DXT3:            {compressedRGBAS3TCDXT3, gl.RGBA, gl.UNSIGNED_BYTE},
	gpu.DXT5:            {compressedRGBAS3TCDXT5, gl.RGBA, gl.UNSIGNED_BYTE},
}

var targets = map[gpu.Target]uint32{
	gpu.Target1D:   gl.TEXTURE_1D,
	gpu.Target2D:   gl.TEXTURE_2D,
	gpu.Target3D:   gl.TEXTURE_3D,
	gpu.TargetCube: gl.TEXTURE_CUBE_MAP,
}

// Device is an OpenGL implementation of gpu.Device.
type Device struct {
	// framebuffer used as the read source of texture to texture copies
	fbo uint32
}

// NewDevice initialises the OpenGL bindings for the current context.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	dev := &Device{}
	gl.GenFramebuffers(1, &dev.fbo)

	return dev, nil
}

// Destroy releases the resources held by the device. Textures created by
// the device must be destroyed separately.
func (dev *Device) Destroy() {
	if dev.fbo != 0 {
		gl.DeleteFramebuffers(1, &dev.fbo)
		dev.fbo = 0
	}
}

func check(op string) error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl32: %s: error %#04x", op, e)
	}
	return nil
}

type texture struct {
	id     uint32
	spec   gpu.Spec
	target uint32
	format glFormat
}

func (tex *texture) ID() uint32 {
	return tex.id
}

func (tex *texture) Spec() gpu.Spec {
	return tex.spec
}

func (tex *texture) Destroy() {
	if tex.id == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.id)
	tex.id = 0
}

func levelDimension(v int, level int) int32 {
	return int32(max(v>>level, 1))
}

// faceTarget returns the target for the numbered layer of a cube map, or the
// texture's own target for anything else.
func (tex *texture) faceTarget(face int) uint32 {
	if tex.target == gl.TEXTURE_CUBE_MAP {
		return gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face)
	}
	return tex.target
}

// Create implements the gpu.Device interface.
func (dev *Device) Create(spec gpu.Spec) (gpu.Texture, error) {
	f, ok := formats[spec.Format]
	if !ok {
		return nil, fmt.Errorf("gl32: unsupported format: %s", spec.Format)
	}
	target, ok := targets[spec.Target]
	if !ok {
		return nil, fmt.Errorf("gl32: unsupported target: %s", spec.Target)
	}
	spec.Depth = max(spec.Depth, 1)
	spec.Levels = max(spec.Levels, 1)

	tex := &texture{spec: spec, target: target, format: f}
	gl.GenTextures(1, &tex.id)
	gl.BindTexture(target, tex.id)

	for l := 0; l < spec.Levels; l++ {
		w := levelDimension(spec.Width, l)
		h := levelDimension(spec.Height, l)
		switch spec.Target {
		case gpu.Target1D:
			gl.TexImage1D(target, int32(l), f.internal, w, 0, f.format, f.xtype, nil)
		case gpu.Target2D:
			gl.TexImage2D(target, int32(l), f.internal, w, h, 0, f.format, f.xtype, nil)
		case gpu.Target3D:
			gl.TexImage3D(target, int32(l), f.internal, w, h, levelDimension(spec.Depth, l), 0, f.format, f.xtype, nil)
		case gpu.TargetCube:
			for face := range 6 {
				gl.TexImage2D(tex.faceTarget(face), int32(l), f.internal, w, h, 0, f.format, f.xtype, nil)
			}
		}
	}

	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(target, gl.TEXTURE_MAX_LEVEL, int32(spec.Levels-1))

	if err := check("create"); err != nil {
		tex.Destroy()
		return nil, err
	}

	return tex, nil
}

func (dev *Device) texture(t gpu.Texture) (*texture, error) {
	tex, ok := t.(*texture)
	if !ok {
		return nil, fmt.Errorf("gl32: texture not created by this device")
	}
	if tex.id == 0 {
		return nil, fmt.Errorf("gl32: texture has been destroyed")
	}
	return tex, nil
}

// pixelStore sets the pack or unpack parameters and returns a function that
// restores the defaults.
func pixelStore(store gpu.PixelStore, unpack bool) func() {
	rowLength := uint32(gl.PACK_ROW_LENGTH)
	swapBytes := uint32(gl.PACK_SWAP_BYTES)
	alignment := uint32(gl.PACK_ALIGNMENT)
	if unpack {
		rowLength = gl.UNPACK_ROW_LENGTH
		swapBytes = gl.UNPACK_SWAP_BYTES
		alignment = gl.UNPACK_ALIGNMENT
	}

	var swap int32
	if store.SwapBytes {
		swap = gl.TRUE
	}

	gl.PixelStorei(rowLength, int32(store.RowLength))
	gl.PixelStorei(swapBytes, swap)
	gl.PixelStorei(alignment, int32(max(store.Alignment, 1)))

	return func() {
		gl.PixelStorei(rowLength, 0)
		gl.PixelStorei(swapBytes, gl.FALSE)
		gl.PixelStorei(alignment, 4)
	}
}

// layout returns the dimensions of the level and the number of bytes in
// one layer of client data.
func (tex *texture) layout(level int, store gpu.PixelStore) (w, h, d int32, layerBytes int) {
	w = levelDimension(tex.spec.Width, level)
	h = levelDimension(tex.spec.Height, level)
	d = 1
	if tex.spec.Target == gpu.Target3D {
		d = levelDimension(tex.spec.Depth, level)
	}
	layerBytes = store.RowBytes(tex.spec.Format, int(w)) * int(h)
	return w, h, d, layerBytes
}

func (tex *texture) clientSize(level int, store gpu.PixelStore) int {
	_, _, d, layerBytes := tex.layout(level, store)
	return layerBytes * int(d) * tex.spec.Target.Faces()
}

// Upload implements the gpu.Device interface.
func (dev *Device) Upload(t gpu.Texture, level int, data []byte, store gpu.PixelStore) error {
	tex, err := dev.texture(t)
	if err != nil {
		return err
	}
	if need := tex.clientSize(level, store); len(data) < need {
		return fmt.Errorf("gl32: upload: %d bytes for %d", len(data), need)
	}

	restore := pixelStore(store, true)
	defer restore()

	gl.BindTexture(tex.target, tex.id)

	w, h, d, layerBytes := tex.layout(level, store)
	f := tex.format
	switch tex.spec.Target {
	case gpu.Target1D:
		gl.TexSubImage1D(tex.target, int32(level), 0, w, f.format, f.xtype, gl.Ptr(data))
	case gpu.Target2D:
		gl.TexSubImage2D(tex.target, int32(level), 0, 0, w, h, f.format, f.xtype, gl.Ptr(data))
	case gpu.Target3D:
		gl.TexSubImage3D(tex.target, int32(level), 0, 0, 0, w, h, d, f.format, f.xtype, gl.Ptr(data))
	case gpu.TargetCube:
		for face := range 6 {
			gl.TexSubImage2D(tex.faceTarget(face), int32(level), 0, 0, w, h, f.format, f.xtype, gl.Ptr(data[face*layerBytes:]))
		}
	}

	return check("upload")
}

// Download implements the gpu.Device interface.
func (dev *Device) Download(t gpu.Texture, level int, dst []byte, store gpu.PixelStore) error {
	tex, err := dev.texture(t)
	if err != nil {
		return err
	}
	if need := tex.clientSize(level, store); len(dst) < need {
		return fmt.Errorf("gl32: download: %d bytes for %d", len(dst), need)
	}

	restore := pixelStore(store, false)
	defer restore()

	gl.BindTexture(tex.target, tex.id)

	_, _, _, layerBytes := tex.layout(level, store)
	f := tex.format
	for face := range tex.spec.Target.Faces() {
		gl.GetTexImage(tex.faceTarget(face), int32(level), f.format, f.xtype, gl.Ptr(dst[face*layerBytes:]))
	}

	return check("download")
}

// compressedSize returns the dimensions of the level and the number of bytes
// of one face as the driver expects them.
func (tex *texture) compressedSize(level int) (w, h, d int32, faceBytes int) {
	w = levelDimension(tex.spec.Width, level)
	h = levelDimension(tex.spec.Height, level)
	d = 1
	if tex.spec.Target == gpu.Target3D {
		d = levelDimension(tex.spec.Depth, level)
	}
	faceBytes = gpu.StorageSize(tex.spec.Format, int(w), int(h)) * int(d)
	return w, h, d, faceBytes
}

// UploadCompressed implements the gpu.Device interface.
func (dev *Device) UploadCompressed(t gpu.Texture, level int, data []byte) error {
	tex, err := dev.texture(t)
	if err != nil {
		return err
	}
	if !tex.spec.Format.Compressed() {
		return fmt.Errorf("gl32: compressed upload to %s texture", tex.spec.Format)
	}

	w, h, d, faceBytes := tex.compressedSize(level)
	if need := faceBytes * tex.spec.Target.Faces(); len(data) < need {
		return fmt.Errorf("gl32: compressed upload: %d bytes for %d", len(data), need)
	}

	gl.BindTexture(tex.target, tex.id)

	internal := uint32(tex.format.internal)
	switch tex.spec.Target {
	case gpu.Target3D:
		gl.CompressedTexSubImage3D(tex.target, int32(level), 0, 0, 0, w, h, d, internal, int32(faceBytes), gl.Ptr(data))
	default:
		for face := range tex.spec.Target.Faces() {
			gl.CompressedTexSubImage2D(tex.faceTarget(face), int32(level), 0, 0, w, h, internal, int32(faceBytes), gl.Ptr(data[face*faceBytes:]))
		}
	}

	return check("compressed upload")
}

// DownloadCompressed implements the gpu.Device interface.
func (dev *Device) DownloadCompressed(t gpu.Texture, level int, dst []byte) error {
	tex, err := dev.texture(t)
	if err != nil {
		return err
	}
	if !tex.spec.Format.Compressed() {
		return fmt.Errorf("gl32: compressed download from %s texture", tex.spec.Format)
	}

	_, _, _, faceBytes := tex.compressedSize(level)
	if need := faceBytes * tex.spec.Target.Faces(); len(dst) < need {
		return fmt.Errorf("gl32: compressed download: %d bytes for %d", len(dst), need)
	}

	gl.BindTexture(tex.target, tex.id)
	for face := range tex.spec.Target.Faces() {
		gl.GetCompressedTexImage(tex.faceTarget(face), int32(level), gl.Ptr(dst[face*faceBytes:]))
	}

	return check("compressed download")
}

// Copy implements the gpu.Device interface. The source texture is attached
// to a framebuffer and copied into the destination.
func (dev *Device) Copy(d gpu.Texture, s gpu.Texture, region gpu.CopyRegion) error {
	dst, err := dev.texture(d)
	if err != nil {
		return err
	}
	src, err := dev.texture(s)
	if err != nil {
		return err
	}
	if dst.spec.Format != src.spec.Format {
		return fmt.Errorf("gl32: copy between formats %s and %s", src.spec.Format, dst.spec.Format)
	}
	if src.target != gl.TEXTURE_2D || dst.target != gl.TEXTURE_2D {
		return fmt.Errorf("gl32: copy is only possible between 2D textures")
	}

	attachment := uint32(gl.COLOR_ATTACHMENT0)
	switch src.spec.Format {
	case gpu.Depth16:
		attachment = gl.DEPTH_ATTACHMENT
	case gpu.Depth24Stencil8:
		attachment = gl.DEPTH_STENCIL_ATTACHMENT
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, dev.fbo)
	defer gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, attachment, gl.TEXTURE_2D, src.id, 0)
	defer gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, attachment, gl.TEXTURE_2D, 0, 0)

	if attachment == gl.COLOR_ATTACHMENT0 {
		gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	} else {
		gl.ReadBuffer(gl.NONE)
	}

	if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("gl32: copy: framebuffer incomplete: %#04x", status)
	}

	gl.BindTexture(gl.TEXTURE_2D, dst.id)
	gl.CopyTexSubImage2D(gl.TEXTURE_2D, 0,
		int32(region.DstX), int32(region.DstY),
		int32(region.SrcX), int32(region.SrcY),
		int32(region.Width), int32(region.Height))

	return check("copy")
}

// GenerateMipmaps implements the gpu.Device interface.
func (dev *Device) GenerateMipmaps(t gpu.Texture) error {
	tex, err := dev.texture(t)
	if err != nil {
		return err
	}
	gl.BindTexture(tex.target, tex.id)
	gl.GenerateMipmap(tex.target)
	return check("generate mipmaps")
}
