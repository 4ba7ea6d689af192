// SPDX-License-Identifier: Unlicense OR MIT

// Package gl describes the OpenGL 4.5 direct state access entry points
// used by the resource wrappers, together with typed object handles and
// the enum values they are called with.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES                         = 0x8b89
	ACTIVE_UNIFORMS                           = 0x8b86
	ARRAY_BUFFER                              = 0x8892
	ATOMIC_COUNTER_BUFFER                     = 0x92c0
	BACK                                      = 0x0405
	BGRA                                      = 0x80e1
	BUFFER                                    = 0x82e0
	BYTE                                      = 0x1400
	CLAMP_TO_BORDER                           = 0x812d
	CLAMP_TO_EDGE                             = 0x812f
	CLIENT_STORAGE_BIT                        = 0x0200
	COLOR_ATTACHMENT0                         = 0x8ce0
	COLOR_BUFFER_BIT                          = 0x4000
	COMPILE_STATUS                            = 0x8b81
	COMPUTE_SHADER                            = 0x91b9
	COPY_READ_BUFFER                          = 0x8f36
	COPY_WRITE_BUFFER                         = 0x8f37
	DEBUG_OUTPUT                              = 0x92e0
	DEBUG_OUTPUT_SYNCHRONOUS                  = 0x8242
	DEBUG_SEVERITY_HIGH                       = 0x9146
	DEBUG_SEVERITY_LOW                        = 0x9148
	DEBUG_SEVERITY_MEDIUM                     = 0x9147
	DEBUG_SEVERITY_NOTIFICATION               = 0x826b
	DEPTH24_STENCIL8                          = 0x88f0
	DEPTH32F_STENCIL8                         = 0x8cad
	DEPTH_ATTACHMENT                          = 0x8d00
	DEPTH_BUFFER_BIT                          = 0x100
	DEPTH_COMPONENT                           = 0x1902
	DEPTH_COMPONENT16                         = 0x81a5
	DEPTH_COMPONENT24                         = 0x81a6
	DEPTH_COMPONENT32F                        = 0x8cac
	DEPTH_STENCIL                             = 0x84f9
	DEPTH_STENCIL_ATTACHMENT                  = 0x821a
	DEPTH_TEST                                = 0xb71
	DOUBLE                                    = 0x140a
	DRAW_FRAMEBUFFER                          = 0x8ca9
	DRAW_INDIRECT_BUFFER                      = 0x8f3f
	DYNAMIC_COPY                              = 0x88ea
	DYNAMIC_DRAW                              = 0x88e8
	DYNAMIC_READ                              = 0x88e9
	DYNAMIC_STORAGE_BIT                       = 0x0100
	ELEMENT_ARRAY_BUFFER                      = 0x8893
	EXTENSIONS                                = 0x1f03
	FALSE                                     = 0
	FIXED                                     = 0x140c
	FLOAT                                     = 0x1406
	FLOAT_32_UNSIGNED_INT_24_8_REV            = 0x8dad
	FLOAT_MAT2                                = 0x8b5a
	FLOAT_MAT3                                = 0x8b5b
	FLOAT_MAT4                                = 0x8b5c
	FLOAT_VEC2                                = 0x8b50
	FLOAT_VEC3                                = 0x8b51
	FLOAT_VEC4                                = 0x8b52
	FRAGMENT_SHADER                           = 0x8b30
	FRAMEBUFFER                               = 0x8d40
	FRAMEBUFFER_COMPLETE                      = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8cdb
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8da8
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8d56
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8cdc
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_UNSUPPORTED                   = 0x8cdd
	GEOMETRY_SHADER                           = 0x8dd9
	HALF_FLOAT                                = 0x140b
	INFO_LOG_LENGTH                           = 0x8b84
	INT                                       = 0x1404
	INT_2_10_10_10_REV                        = 0x8d9f
	INT_VEC2                                  = 0x8b53
	INT_VEC3                                  = 0x8b54
	INT_VEC4                                  = 0x8b55
	INVALID_ENUM                              = 0x0500
	INVALID_FRAMEBUFFER_OPERATION             = 0x0506
	INVALID_OPERATION                         = 0x0502
	INVALID_VALUE                             = 0x0501
	LINEAR                                    = 0x2601
	LINEAR_MIPMAP_LINEAR                      = 0x2703
	LINEAR_MIPMAP_NEAREST                     = 0x2701
	LINES                                     = 0x1
	LINE_LOOP                                 = 0x2
	LINE_STRIP                                = 0x3
	LINK_STATUS                               = 0x8b82
	MAJOR_VERSION                             = 0x821b
	MAP_COHERENT_BIT                          = 0x0080
	MAP_PERSISTENT_BIT                        = 0x0040
	MAP_READ_BIT                              = 0x0001
	MAP_WRITE_BIT                             = 0x0002
	MAX_3D_TEXTURE_SIZE                       = 0x8073
	MAX_ARRAY_TEXTURE_LAYERS                  = 0x88ff
	MAX_COLOR_ATTACHMENTS                     = 0x8cdf
	MAX_DRAW_BUFFERS                          = 0x8824
	MAX_TEXTURE_SIZE                          = 0xd33
	MAX_VERTEX_ATTRIBS                        = 0x8869
	MINOR_VERSION                             = 0x821c
	MIRRORED_REPEAT                           = 0x8370
	NEAREST                                   = 0x2600
	NEAREST_MIPMAP_LINEAR                     = 0x2702
	NEAREST_MIPMAP_NEAREST                    = 0x2700
	NONE                                      = 0x0
	NO_ERROR                                  = 0x0
	OUT_OF_MEMORY                             = 0x0505
	PATCHES                                   = 0xe
	PIXEL_PACK_BUFFER                         = 0x88eb
	PIXEL_UNPACK_BUFFER                       = 0x88ec
	POINTS                                    = 0x0
	PROGRAM                                   = 0x82e2
	R16F                                      = 0x822d
	R32F                                      = 0x822e
	R32I                                      = 0x8235
	R32UI                                     = 0x8236
	R8                                        = 0x8229
	READ_FRAMEBUFFER                          = 0x8ca8
	READ_ONLY                                 = 0x88b8
	READ_WRITE                                = 0x88ba
	RED                                       = 0x1903
	RED_INTEGER                               = 0x8d94
	RENDERER                                  = 0x1f01
	REPEAT                                    = 0x2901
	RG                                        = 0x8227
	RG16F                                     = 0x822f
	RG32F                                     = 0x8230
	RG8                                       = 0x822b
	RGB                                       = 0x1907
	RGB32F                                    = 0x8815
	RGB8                                      = 0x8051
	RGBA                                      = 0x1908
	RGBA16F                                   = 0x881a
	RGBA32F                                   = 0x8814
	RGBA32UI                                  = 0x8d70
	RGBA8                                     = 0x8058
	RGBA_INTEGER                              = 0x8d99
	SAMPLER                                   = 0x82e6
	SAMPLER_2D                                = 0x8b5e
	SHADER                                    = 0x82e1
	SHADER_STORAGE_BUFFER                     = 0x90d2
	SHADING_LANGUAGE_VERSION                  = 0x8b8c
	SHORT                                     = 0x1402
	SRGB8_ALPHA8                              = 0x8c43
	STACK_OVERFLOW                            = 0x0503
	STACK_UNDERFLOW                           = 0x0504
	STATIC_COPY                               = 0x88e6
	STATIC_DRAW                               = 0x88e4
	STATIC_READ                               = 0x88e5
	STENCIL_ATTACHMENT                        = 0x8d20
	STENCIL_BUFFER_BIT                        = 0x00000400
	STREAM_COPY                               = 0x88e2
	STREAM_DRAW                               = 0x88e0
	STREAM_READ                               = 0x88e1
	TESS_CONTROL_SHADER                       = 0x8e88
	TESS_EVALUATION_SHADER                    = 0x8e87
	TEXTURE                                   = 0x1702
	TEXTURE0                                  = 0x84c0
	TEXTURE_1D                                = 0xde0
	TEXTURE_1D_ARRAY                          = 0x8c18
	TEXTURE_2D                                = 0xde1
	TEXTURE_2D_ARRAY                          = 0x8c1a
	TEXTURE_3D                                = 0x806f
	TEXTURE_BASE_LEVEL                        = 0x813c
	TEXTURE_BUFFER                            = 0x8c2a
	TEXTURE_COMPARE_FUNC                      = 0x884d
	TEXTURE_COMPARE_MODE                      = 0x884c
	TEXTURE_CUBE_MAP                          = 0x8513
	TEXTURE_CUBE_MAP_ARRAY                    = 0x9009
	TEXTURE_LOD_BIAS                          = 0x8501
	TEXTURE_MAG_FILTER                        = 0x2800
	TEXTURE_MAX_ANISOTROPY                    = 0x84fe
	TEXTURE_MAX_LEVEL                         = 0x813d
	TEXTURE_MAX_LOD                           = 0x813b
	TEXTURE_MIN_FILTER                        = 0x2801
	TEXTURE_MIN_LOD                           = 0x813a
	TEXTURE_WRAP_R                            = 0x8072
	TEXTURE_WRAP_S                            = 0x2802
	TEXTURE_WRAP_T                            = 0x2803
	TRIANGLES                                 = 0x4
	TRIANGLE_FAN                              = 0x6
	TRIANGLE_STRIP                            = 0x5
	TRUE                                      = 1
	UNIFORM_BUFFER                            = 0x8a11
	UNPACK_ALIGNMENT                          = 0xcf5
	UNSIGNED_BYTE                             = 0x1401
	UNSIGNED_INT                              = 0x1405
	UNSIGNED_INT_10F_11F_11F_REV              = 0x8c3b
	UNSIGNED_INT_24_8                         = 0x84fa
	UNSIGNED_INT_2_10_10_10_REV               = 0x8368
	UNSIGNED_SHORT                            = 0x1403
	VENDOR                                    = 0x1f00
	VERSION                                   = 0x1f02
	VERTEX_ARRAY                              = 0x8074
	VERTEX_SHADER                             = 0x8b31
	WRITE_ONLY                                = 0x88b9
	ZERO                                      = 0x0
)
