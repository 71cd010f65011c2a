package opengl

// Standard material vertex shader. Displacement is applied along the
// normal before projection; fog depth is the view-space distance.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec2 inUV2;
layout(location = 4) in vec3 inTangent;
layout(location = 5) in vec3 inBitangent;

uniform mat4 mvp;
uniform mat4 model;
uniform mat4 modelView;

uniform sampler2D displacementMap;
uniform bool      hasDisplacementMap;
uniform float     displacementScale;
uniform float     displacementBias;

out vec3  fragWorldPos;
out vec3  fragNormal;
out vec3  fragTangent;
out vec3  fragBitangent;
out vec2  fragUV;
out vec2  fragUV2;
out float fragFogDepth;

void main() {
    vec3 pos = inPosition;
    if (hasDisplacementMap) {
        float h = texture(displacementMap, inUV).r;
        pos += normalize(inNormal) * (h * displacementScale + displacementBias);
    }

    mat3 normalMat = transpose(inverse(mat3(model)));

    fragWorldPos  = (model * vec4(pos, 1.0)).xyz;
    fragNormal    = normalMat * inNormal;
    fragTangent   = mat3(model) * inTangent;
    fragBitangent = mat3(model) * inBitangent;
    fragUV        = inUV;
    fragUV2       = inUV2;
    fragFogDepth  = -(modelView * vec4(pos, 1.0)).z;

    gl_Position = mvp * vec4(pos, 1.0);
}
` + "\x00"

// Standard material fragment shader: Cook-Torrance GGX over ambient,
// directional and point lights, texture channels in the three.js layout
// (alpha in G, AO in R via uv2, roughness in G, metalness in B) and
// smoothstep range fog applied after output encoding.
const fragSrc = `
#version 410 core
in vec3  fragWorldPos;
in vec3  fragNormal;
in vec3  fragTangent;
in vec3  fragBitangent;
in vec2  fragUV;
in vec2  fragUV2;
in float fragFogDepth;

out vec4 outColor;

uniform vec3 cameraPos;
uniform vec3 ambientColor;

#define MAX_DIR_LIGHTS 4
uniform int  dirLightCount;
uniform vec3 dirLightDir[MAX_DIR_LIGHTS];
uniform vec3 dirLightColor[MAX_DIR_LIGHTS];

#define MAX_POINT_LIGHTS 8
uniform int   pointLightCount;
uniform vec3  pointLightPos[MAX_POINT_LIGHTS];
uniform vec3  pointLightColor[MAX_POINT_LIGHTS];
uniform float pointLightDistance[MAX_POINT_LIGHTS];
uniform float pointLightDecay[MAX_POINT_LIGHTS];

uniform vec4  matColor;
uniform float matMetalness;
uniform float matRoughness;
uniform float aoMapIntensity;
uniform float normalScale;
uniform bool  transparent;
uniform bool  doubleSided;

uniform sampler2D map;
uniform bool      hasMap;
uniform sampler2D alphaMap;
uniform bool      hasAlphaMap;
uniform sampler2D aoMap;
uniform bool      hasAOMap;
uniform sampler2D normalMap;
uniform bool      hasNormalMap;
uniform sampler2D metalnessMap;
uniform bool      hasMetalnessMap;
uniform sampler2D roughnessMap;
uniform bool      hasRoughnessMap;

uniform bool  fogEnabled;
uniform vec3  fogColor;
uniform float fogNear;
uniform float fogFar;

const float PI = 3.14159265359;

vec3 toLinear(vec3 c) { return pow(c, vec3(2.2)); }
vec3 toSRGB(vec3 c)   { return pow(c, vec3(1.0 / 2.2)); }

float DistributionGGX(float NdH, float roughness) {
    float a  = roughness * roughness;
    float a2 = a * a;
    float d  = NdH * NdH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float GeometrySchlickGGX(float cosTheta, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return cosTheta / (cosTheta * (1.0 - k) + k);
}

vec3 FresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 evalPBR(vec3 N, vec3 V, vec3 L, vec3 rad, vec3 albedo, float metallic, float roughness, vec3 F0) {
    float NdL = max(dot(N, L), 0.0);
    if (NdL <= 0.0) return vec3(0.0);

    vec3  H   = normalize(V + L);
    float NdV = max(dot(N, V), 0.0);

    float D = DistributionGGX(max(dot(N, H), 0.0), roughness);
    float G = GeometrySchlickGGX(NdV, roughness) * GeometrySchlickGGX(NdL, roughness);
    vec3  F = FresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 kD       = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 specular = D * G * F / max(4.0 * NdV * NdL, 0.001);

    return (kD * albedo / PI + specular) * rad * NdL;
}

float distanceAttenuation(float d, float cutoff, float decay) {
    float falloff = 1.0 / max(pow(d, decay), 0.01);
    if (cutoff > 0.0) {
        float r = d / cutoff;
        float w = clamp(1.0 - r * r * r * r, 0.0, 1.0);
        falloff *= w * w;
    }
    return falloff;
}

void main() {
    vec4 base = matColor;
    if (hasMap) {
        base *= texture(map, fragUV);
    }
    if (hasAlphaMap) {
        base.a *= texture(alphaMap, fragUV).g;
    }
    if (transparent && base.a < 0.001) {
        discard;
    }
    vec3 albedo = toLinear(base.rgb);

    vec3 N = normalize(fragNormal);
    if (hasNormalMap) {
        vec3 t = texture(normalMap, fragUV).rgb * 2.0 - 1.0;
        t.xy *= normalScale;
        mat3 TBN = mat3(normalize(fragTangent), normalize(fragBitangent), N);
        N = normalize(TBN * t);
    }
    if (doubleSided && !gl_FrontFacing) {
        N = -N;
    }
    vec3 V = normalize(cameraPos - fragWorldPos);

    float metallic = matMetalness;
    if (hasMetalnessMap) {
        metallic *= texture(metalnessMap, fragUV).b;
    }
    float roughness = matRoughness;
    if (hasRoughnessMap) {
        roughness *= texture(roughnessMap, fragUV).g;
    }
    roughness = clamp(roughness, 0.04, 1.0);
    vec3 F0 = mix(vec3(0.04), albedo, metallic);

    float ao = 1.0;
    if (hasAOMap) {
        ao = (texture(aoMap, fragUV2).r - 1.0) * aoMapIntensity + 1.0;
    }

    vec3 color = ambientColor * albedo * ao;

    for (int i = 0; i < dirLightCount; i++) {
        color += evalPBR(N, V, -normalize(dirLightDir[i]), dirLightColor[i], albedo, metallic, roughness, F0);
    }
    for (int i = 0; i < pointLightCount; i++) {
        vec3  toLight = pointLightPos[i] - fragWorldPos;
        float d       = length(toLight);
        float att     = distanceAttenuation(d, pointLightDistance[i], pointLightDecay[i]);
        color += evalPBR(N, V, toLight / max(d, 0.0001), pointLightColor[i] * att, albedo, metallic, roughness, F0);
    }

    vec3 rgb = toSRGB(color);
    if (fogEnabled) {
        rgb = mix(rgb, fogColor, smoothstep(fogNear, fogFar, fragFogDepth));
    }
    outColor = vec4(rgb, transparent ? base.a : 1.0);
}
` + "\x00"
